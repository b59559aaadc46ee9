package profile

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/gdugdh24/mentorlink-backend/internal/domain"
	"github.com/gdugdh24/mentorlink-backend/internal/repository"
	"github.com/gdugdh24/mentorlink-backend/internal/repository/memory"
	"github.com/gdugdh24/mentorlink-backend/internal/usecase/tags"
	"github.com/google/uuid"
)

var ada = domain.Identity{ID: "user_ada", Email: "ada@example.com"}

func newUseCase(store repository.Store, bios BioGenerator) *ProfileUseCase {
	return NewProfileUseCase(store, tags.NewReconciler(), nil, nil, bios, nil)
}

func menteeRequest() *CreateProfileRequest {
	return &CreateProfileRequest{
		Role:            "mentee",
		FirstName:       "Ada",
		LastName:        "Lovelace",
		AreasOfInterest: []string{"UX Design", "ux design"},
		ExperienceLevel: "junior",
		PreferredFormat: []string{"Daily check-ins"},
		TimeCommitment:  "2-4",
		Industry:        "Fintech",
		City:            "  London ",
	}
}

func mentorRequest() *CreateProfileRequest {
	age := 41
	return &CreateProfileRequest{
		Role:              "mentor",
		FirstName:         "Grace",
		LastName:          "Hopper",
		Age:               &age,
		Expertise:         []string{"Compilers", "Leadership"},
		MentorshipAreas:   []string{"Leadership", "Career Growth"},
		YearsOfExperience: "7-15",
		MentoringFormat:   []string{"Bi-weekly"},
		Availability:      "8+",
		HelpsWith:         "Career changes",
	}
}

func decodeUpdate(t *testing.T, body string) *UpdateProfileRequest {
	t.Helper()
	var req UpdateProfileRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("decode update %s: %v", body, err)
	}
	return &req
}

func slugsOf(list []domain.Tag) []string {
	out := make([]string, len(list))
	for i, tag := range list {
		out[i] = tag.Slug
	}
	return out
}

func TestCompleteOnboardingMentee(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store, nil)

	view, err := uc.CompleteOnboarding(context.Background(), ada, menteeRequest())
	if err != nil {
		t.Fatalf("onboarding failed: %v", err)
	}

	if view.User.Role != domain.RoleMentee || view.User.Name != "Ada Lovelace" || view.User.Age != DefaultAge {
		t.Fatalf("unexpected account: %+v", view.User)
	}
	if view.User.Email != ada.Email {
		t.Fatalf("email should come from identity, got %q", view.User.Email)
	}

	p := view.Profile
	if p.ExperienceLevel == nil || *p.ExperienceLevel != domain.ExperienceMid {
		t.Fatalf("expected MID experience, got %v", p.ExperienceLevel)
	}
	if p.MeetingFrequency == nil || *p.MeetingFrequency != domain.MeetingWeekly {
		t.Fatalf("expected WEEKLY meetings, got %v", p.MeetingFrequency)
	}
	if p.AvailableHoursPerMonth == nil || *p.AvailableHoursPerMonth != 4 {
		t.Fatalf("expected 4 hours, got %v", p.AvailableHoursPerMonth)
	}
	if p.City == nil || *p.City != "London" {
		t.Fatalf("expected trimmed city, got %v", p.City)
	}

	if got := slugsOf(p.Interests); len(got) != 1 || got[0] != "ux-design" {
		t.Fatalf("expected one ux-design interest, got %v", got)
	}
	if got := slugsOf(p.Industries); len(got) != 1 || got[0] != "fintech" {
		t.Fatalf("expected fintech industry, got %v", got)
	}

	dict, err := store.Repos().Tags.List(context.Background(), domain.TagInterest, 10, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(dict) != 1 {
		t.Fatalf("expected exactly one interest row, got %d", len(dict))
	}
	linked, err := store.Repos().Tags.LinkedTagIDs(context.Background(), p.ID, domain.TagInterest)
	if err != nil {
		t.Fatalf("linked ids: %v", err)
	}
	if len(linked) != 1 {
		t.Fatalf("expected one link, got %d", len(linked))
	}
}

func TestCompleteOnboardingMentor(t *testing.T) {
	uc := newUseCase(memory.NewStore(), nil)

	view, err := uc.CompleteOnboarding(context.Background(), ada, mentorRequest())
	if err != nil {
		t.Fatalf("onboarding failed: %v", err)
	}

	if view.User.Role != domain.RoleMentor || view.User.Age != 41 {
		t.Fatalf("unexpected account: %+v", view.User)
	}
	p := view.Profile
	if p.ExperienceLevel == nil || *p.ExperienceLevel != domain.ExperienceSenior {
		t.Fatalf("expected SENIOR, got %v", p.ExperienceLevel)
	}
	if p.MeetingFrequency == nil || *p.MeetingFrequency != domain.MeetingBiweekly {
		t.Fatalf("expected BIWEEKLY, got %v", p.MeetingFrequency)
	}
	if p.AvailableHoursPerMonth == nil || *p.AvailableHoursPerMonth != 10 {
		t.Fatalf("expected 10 hours, got %v", p.AvailableHoursPerMonth)
	}
	if p.HelpsWith == nil || *p.HelpsWith != "Career changes" {
		t.Fatalf("unexpected helpsWith: %v", p.HelpsWith)
	}

	got := slugsOf(p.Interests)
	want := []string{"compilers", "leadership", "career-growth"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
	if len(p.Industries) != 0 {
		t.Fatalf("expected no industries, got %v", p.Industries)
	}
}

func TestCompleteOnboardingTwiceConflicts(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store, nil)

	if _, err := uc.CompleteOnboarding(context.Background(), ada, menteeRequest()); err != nil {
		t.Fatalf("first onboarding: %v", err)
	}

	second := menteeRequest()
	second.FirstName = "Augusta"
	if _, err := uc.CompleteOnboarding(context.Background(), ada, second); !errors.Is(err, domain.ErrProfileAlreadyExists) {
		t.Fatalf("expected ErrProfileAlreadyExists, got %v", err)
	}

	account, err := store.Repos().Accounts.GetByID(context.Background(), ada.ID)
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	if account.Name != "Ada Lovelace" {
		t.Fatalf("rejected submission leaked into account: %q", account.Name)
	}
}

func TestCompleteOnboardingValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateProfileRequest)
		want   error
	}{
		{"unknown role", func(r *CreateProfileRequest) { r.Role = "admin" }, domain.ErrInvalidRole},
		{"missing role", func(r *CreateProfileRequest) { r.Role = "" }, domain.ErrInvalidRole},
		{"mentor field on mentee", func(r *CreateProfileRequest) { r.Expertise = []string{"Go"} }, domain.ErrRoleMismatch},
		{"blank first name", func(r *CreateProfileRequest) { r.FirstName = "  " }, domain.ErrMissingRequiredField},
		{"no interests", func(r *CreateProfileRequest) { r.AreasOfInterest = nil }, domain.ErrMissingRequiredField},
		{"bad tag name", func(r *CreateProfileRequest) { r.AreasOfInterest = []string{"Go", "???"} }, domain.ErrInvalidTagName},
		{"bad industry", func(r *CreateProfileRequest) { r.Industry = "%%" }, domain.ErrInvalidTagName},
		{"age out of range", func(r *CreateProfileRequest) { age := 7; r.Age = &age }, domain.ErrInvalidInput},
		{"unknown experience level", func(r *CreateProfileRequest) { r.ExperienceLevel = "expert" }, domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewStore()
			uc := newUseCase(store, nil)

			req := menteeRequest()
			tt.mutate(req)
			_, err := uc.CompleteOnboarding(context.Background(), ada, req)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if !IsValidationError(err) {
				t.Fatalf("expected a validation error, got %v", err)
			}
			if _, err := store.Repos().Accounts.GetByID(context.Background(), ada.ID); !errors.Is(err, domain.ErrAccountNotFound) {
				t.Fatalf("nothing should be written, got %v", err)
			}
		})
	}
}

func TestCompleteOnboardingMentorNeedsTopics(t *testing.T) {
	uc := newUseCase(memory.NewStore(), nil)

	req := mentorRequest()
	req.Expertise = nil
	req.MentorshipAreas = nil
	if _, err := uc.CompleteOnboarding(context.Background(), ada, req); !errors.Is(err, domain.ErrMissingRequiredField) {
		t.Fatalf("expected ErrMissingRequiredField, got %v", err)
	}

	req = mentorRequest()
	req.Goals = "Learn Go"
	if _, err := uc.CompleteOnboarding(context.Background(), ada, req); !errors.Is(err, domain.ErrRoleMismatch) {
		t.Fatalf("expected ErrRoleMismatch, got %v", err)
	}
}

// failingLinkStore makes every tag link fail inside transactions.
type failingLinkStore struct {
	*memory.Store
}

type failingTags struct {
	repository.TagRepository
}

var errLinkFailed = errors.New("link failed")

func (failingTags) Link(context.Context, uuid.UUID, domain.TagKind, []uuid.UUID) error {
	return errLinkFailed
}

func (s failingLinkStore) WithTx(ctx context.Context, fn func(repository.Repositories) error) error {
	return s.Store.WithTx(ctx, func(r repository.Repositories) error {
		r.Tags = failingTags{TagRepository: r.Tags}
		return fn(r)
	})
}

func TestCompleteOnboardingRollsBackOnFailure(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(failingLinkStore{Store: store}, nil)

	_, err := uc.CompleteOnboarding(context.Background(), ada, menteeRequest())
	if !errors.Is(err, errLinkFailed) {
		t.Fatalf("expected link failure, got %v", err)
	}
	if IsValidationError(err) {
		t.Fatal("persistence failure must not look like a validation error")
	}

	ctx := context.Background()
	if _, err := store.Repos().Accounts.GetByID(ctx, ada.ID); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("account should be rolled back, got %v", err)
	}
	if _, err := store.Repos().Profiles.GetByAccountID(ctx, ada.ID); !errors.Is(err, domain.ErrProfileNotFound) {
		t.Fatalf("profile should be rolled back, got %v", err)
	}
	if dict, _ := store.Repos().Tags.List(ctx, domain.TagInterest, 10, 0); len(dict) != 0 {
		t.Fatalf("tags should be rolled back, got %v", dict)
	}
}

func TestUpdateProfileReplacesIndustries(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store, nil)
	ctx := context.Background()

	if _, err := uc.CompleteOnboarding(ctx, ada, menteeRequest()); err != nil {
		t.Fatalf("onboarding: %v", err)
	}

	p, err := uc.UpdateProfile(ctx, ada, decodeUpdate(t, `{"industries":["Healthcare"]}`))
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := slugsOf(p.Industries); len(got) != 1 || got[0] != "healthcare" {
		t.Fatalf("expected only healthcare, got %v", got)
	}
	if got := slugsOf(p.Interests); len(got) != 1 || got[0] != "ux-design" {
		t.Fatalf("interests must be untouched, got %v", got)
	}

	fintech, err := store.Repos().Tags.GetBySlugs(ctx, domain.TagIndustry, []string{"fintech"})
	if err != nil || len(fintech) != 1 {
		t.Fatalf("fintech row must survive, got %v, %v", fintech, err)
	}
}

func TestUpdateProfileTagPresence(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"absent keeps links", `{"bio":"hello"}`, 1},
		{"empty list clears", `{"interests":[]}`, 0},
		{"null clears", `{"interests":null}`, 0},
		{"new set replaces", `{"interests":["Go","Rust","go"]}`, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newUseCase(memory.NewStore(), nil)
			ctx := context.Background()
			if _, err := uc.CompleteOnboarding(ctx, ada, menteeRequest()); err != nil {
				t.Fatalf("onboarding: %v", err)
			}

			if _, err := uc.UpdateProfile(ctx, ada, decodeUpdate(t, tt.body)); err != nil {
				t.Fatalf("update: %v", err)
			}

			view, err := uc.GetProfile(ctx, ada.ID)
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if len(view.Profile.Interests) != tt.want {
				t.Fatalf("expected %d interests, got %v", tt.want, slugsOf(view.Profile.Interests))
			}
		})
	}
}

func TestUpdateProfileScalarSemantics(t *testing.T) {
	uc := newUseCase(memory.NewStore(), nil)
	ctx := context.Background()

	req := menteeRequest()
	req.Bio = "Original bio"
	req.Goals = "Ship a product"
	if _, err := uc.CompleteOnboarding(ctx, ada, req); err != nil {
		t.Fatalf("onboarding: %v", err)
	}

	p, err := uc.UpdateProfile(ctx, ada, decodeUpdate(t, `{
		"bio": "  New bio  ",
		"city": null,
		"goals": "   ",
		"experienceLevel": "EXECUTIVE",
		"meetingFrequency": null,
		"availableHoursPerMonth": 12
	}`))
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if p.Bio == nil || *p.Bio != "New bio" {
		t.Fatalf("expected trimmed bio, got %v", p.Bio)
	}
	if p.City != nil {
		t.Fatalf("null should clear city, got %q", *p.City)
	}
	if p.Goals != nil {
		t.Fatalf("blank should clear goals, got %q", *p.Goals)
	}
	if p.ExperienceLevel == nil || *p.ExperienceLevel != domain.ExperienceExecutive {
		t.Fatalf("expected EXECUTIVE, got %v", p.ExperienceLevel)
	}
	if p.MeetingFrequency != nil {
		t.Fatalf("null should clear meeting frequency, got %v", *p.MeetingFrequency)
	}
	if p.AvailableHoursPerMonth == nil || *p.AvailableHoursPerMonth != 12 {
		t.Fatalf("expected 12 hours, got %v", p.AvailableHoursPerMonth)
	}
	if p.TwitterURL != nil || p.Timezone != nil {
		t.Fatal("absent fields must stay unset")
	}

	stored, err := uc.GetProfile(ctx, ada.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Profile.Bio == nil || *stored.Profile.Bio != "New bio" {
		t.Fatalf("update not persisted: %v", stored.Profile.Bio)
	}
}

func TestUpdateProfileErrors(t *testing.T) {
	uc := newUseCase(memory.NewStore(), nil)
	ctx := context.Background()

	if _, err := uc.UpdateProfile(ctx, ada, decodeUpdate(t, `{"bio":"x"}`)); !errors.Is(err, domain.ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}

	if _, err := uc.CompleteOnboarding(ctx, ada, menteeRequest()); err != nil {
		t.Fatalf("onboarding: %v", err)
	}

	for _, body := range []string{
		`{"experienceLevel":"junior"}`,
		`{"meetingFrequency":"DAILY"}`,
		`{"availableHoursPerMonth":-1}`,
		`{"interests":["ok","!!"]}`,
	} {
		_, err := uc.UpdateProfile(ctx, ada, decodeUpdate(t, body))
		if !IsValidationError(err) {
			t.Errorf("%s: expected validation error, got %v", body, err)
		}
	}
}

func TestConcurrentUpdatesLeaveOneFullSet(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store, nil)
	ctx := context.Background()

	if _, err := uc.CompleteOnboarding(ctx, ada, menteeRequest()); err != nil {
		t.Fatalf("onboarding: %v", err)
	}

	setA := `{"interests":["Go","Rust","Zig"]}`
	setB := `{"interests":["Design","Research"]}`

	for round := 0; round < 20; round++ {
		var wg sync.WaitGroup
		errs := make(chan error, 2)
		for _, body := range []string{setA, setB} {
			req := decodeUpdate(t, body)
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := uc.UpdateProfile(ctx, ada, req)
				errs <- err
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			if err != nil {
				t.Fatalf("update: %v", err)
			}
		}

		view, err := uc.GetProfile(ctx, ada.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		got := slugsOf(view.Profile.Interests)
		isA := len(got) == 3 && got[0] == "go" && got[1] == "rust" && got[2] == "zig"
		isB := len(got) == 2 && got[0] == "design" && got[1] == "research"
		if !isA && !isB {
			t.Fatalf("round %d: interleaved link set %v", round, got)
		}
	}
}

func TestGetProfile(t *testing.T) {
	uc := newUseCase(memory.NewStore(), nil)
	ctx := context.Background()

	if _, err := uc.GetProfile(ctx, ada.ID); !errors.Is(err, domain.ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}

	if _, err := uc.CompleteOnboarding(ctx, ada, menteeRequest()); err != nil {
		t.Fatalf("onboarding: %v", err)
	}
	view, err := uc.GetProfile(ctx, ada.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if view.User.ID != ada.ID || len(view.Profile.Interests) != 1 || len(view.Profile.Industries) != 1 {
		t.Fatalf("unexpected view: %+v", view)
	}
}

type stubBios struct {
	bios map[string]string
	err  error
}

func (s stubBios) GenerateBios(context.Context, domain.BioRequest) (map[string]string, error) {
	return s.bios, s.err
}

func TestGenerateBio(t *testing.T) {
	req := &GenerateBioRequest{Role: "mentor", FirstName: "Grace", Interests: []string{"Compilers", "Leadership"}}

	uc := newUseCase(memory.NewStore(), stubBios{bios: map[string]string{"friendly": "from model"}})
	bios, err := uc.GenerateBio(context.Background(), req)
	if err != nil || bios["friendly"] != "from model" {
		t.Fatalf("expected model output, got %v, %v", bios, err)
	}

	uc = newUseCase(memory.NewStore(), stubBios{err: errors.New("quota exceeded")})
	bios, err = uc.GenerateBio(context.Background(), req)
	if err != nil {
		t.Fatalf("fallback should not fail: %v", err)
	}
	if len(bios) != 3 || bios[domain.BioToneConcise] != "Grace. Mentor. Ask me about Compilers and Leadership." {
		t.Fatalf("unexpected fallback bios: %v", bios)
	}

	uc = newUseCase(memory.NewStore(), nil)
	if _, err := uc.GenerateBio(context.Background(), &GenerateBioRequest{Role: "mentee"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing name, got %v", err)
	}
	if _, err := uc.GenerateBio(context.Background(), &GenerateBioRequest{Role: "boss", FirstName: "x"}); !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestListTags(t *testing.T) {
	uc := newUseCase(memory.NewStore(), nil)
	ctx := context.Background()

	req := menteeRequest()
	req.AreasOfInterest = []string{"Alpha", "Bravo", "Charlie"}
	if _, err := uc.CompleteOnboarding(ctx, ada, req); err != nil {
		t.Fatalf("onboarding: %v", err)
	}

	page, err := uc.ListTags(ctx, domain.TagInterest, 2, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if got := slugsOf(page); len(got) != 2 || got[0] != "bravo" || got[1] != "charlie" {
		t.Fatalf("unexpected page %v", got)
	}

	all, err := uc.ListTags(ctx, domain.TagInterest, 0, -5)
	if err != nil || len(all) != 3 {
		t.Fatalf("expected defaults to return all 3, got %v, %v", all, err)
	}

	if _, err := uc.ListTags(ctx, "skills", 10, 0); !errors.Is(err, domain.ErrInvalidTagKind) {
		t.Fatalf("expected ErrInvalidTagKind, got %v", err)
	}
}

func TestCompleteOnboardingExperienceKeys(t *testing.T) {
	ctx := context.Background()

	mentor := mentorRequest()
	mentor.YearsOfExperience = "20 years"
	if _, err := newUseCase(memory.NewStore(), nil).CompleteOnboarding(ctx, ada, mentor); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown bracket, got %v", err)
	}

	mentee := menteeRequest()
	mentee.ExperienceLevel = " Junior "
	view, err := newUseCase(memory.NewStore(), nil).CompleteOnboarding(ctx, ada, mentee)
	if err != nil {
		t.Fatalf("onboarding: %v", err)
	}
	if view.Profile.ExperienceLevel == nil || *view.Profile.ExperienceLevel != domain.ExperienceMid {
		t.Fatalf("expected MID, got %v", view.Profile.ExperienceLevel)
	}
}
