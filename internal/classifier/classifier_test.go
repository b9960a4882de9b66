package classifier_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jonesrussell/formsight/internal/classifier"
	"github.com/jonesrussell/formsight/internal/domain"
	"github.com/jonesrussell/formsight/internal/logger"
)

const testVersion = "test"

var errAnalyzer = errors.New("analyzer broke")

// failingScorer fails every signal contract the engine consumes.
type failingScorer struct{}

func (failingScorer) Score(_ context.Context, _ string) (int, error) {
	return 0, errAnalyzer
}

type failingFormScorer struct{}

func (failingFormScorer) Score(_ context.Context, _ []domain.FieldDescriptor, _ bool) (int, error) {
	return 0, errAnalyzer
}

func newTestClassifier() *classifier.Classifier {
	return classifier.NewClassifier(logger.NewNop(), nil, classifier.Config{Version: testVersion})
}

// registrationSnapshot builds a snapshot that scores url 65, content 75,
// form 20, weighing exactly to the positive threshold of 60.
func registrationSnapshot() *domain.PageSnapshot {
	return &domain.PageSnapshot{
		PageID: "tab-7",
		URL:    "https://corp.dc.gov/business/register/entity?type=llc&doc=registration-license-permit-corporation",
		VisibleText: "Begin business registration for your LLC or corporation. " +
			"You can register a business as a limited liability company, an incorporated " +
			"entity, a partnership, or a sole proprietorship, or operate under a trade name " +
			"by doing business as. A business license requires filed articles of organization.",
		Fields: []domain.FieldDescriptor{
			{Name: "email", Tag: domain.FieldTagInput},
			{Name: "phone", Tag: domain.FieldTagInput},
			{Name: "business_name", Tag: domain.FieldTagInput},
			{Name: "owner_name", Tag: domain.FieldTagInput},
		},
		HasFormContainer: true,
	}
}

func TestClassifier_Classify_PositiveAtThreshold(t *testing.T) {
	c := newTestClassifier()
	snap := registrationSnapshot()

	result := c.Classify(context.Background(), snap)

	want := domain.SignalScores{URL: 65, Content: 75, Form: 20}
	if result.Signals != want {
		t.Fatalf("Signals = %+v, want %+v", result.Signals, want)
	}
	if result.ConfidenceScore != 60 {
		t.Errorf("ConfidenceScore = %d, want 60", result.ConfidenceScore)
	}
	if !result.IsBusinessRegistrationForm {
		t.Error("expected positive verdict at exact threshold")
	}
	if result.Jurisdiction != "DC" {
		t.Errorf("Jurisdiction = %q, want DC", result.Jurisdiction)
	}
	if result.Error != "" {
		t.Errorf("unexpected error marker %q", result.Error)
	}
	if result.PageID != snap.PageID || result.URL != snap.URL {
		t.Error("result must carry snapshot identity")
	}
	if result.DetectorVersion != testVersion {
		t.Errorf("DetectorVersion = %q, want %q", result.DetectorVersion, testVersion)
	}
}

func TestClassifier_Classify_NegativeBelowThreshold(t *testing.T) {
	c := newTestClassifier()
	// Same page with loose unmatched fields: url 65, content 75, form 10,
	// weighing to 58.
	snap := registrationSnapshot()
	snap.HasFormContainer = false
	snap.Fields = []domain.FieldDescriptor{
		{Name: "email", Tag: domain.FieldTagInput},
		{Name: "phone", Tag: domain.FieldTagInput},
		{Name: "city", Tag: domain.FieldTagInput},
	}

	result := c.Classify(context.Background(), snap)

	if result.ConfidenceScore != 58 {
		t.Fatalf("ConfidenceScore = %d, want 58", result.ConfidenceScore)
	}
	if result.IsBusinessRegistrationForm {
		t.Error("expected negative verdict below threshold")
	}
	// Jurisdiction inference is independent of the verdict.
	if result.Jurisdiction != "DC" {
		t.Errorf("Jurisdiction = %q, want DC", result.Jurisdiction)
	}
}

func TestClassifier_Classify_Idempotent(t *testing.T) {
	c := newTestClassifier()
	snap := registrationSnapshot()

	first := c.Classify(context.Background(), snap)
	second := c.Classify(context.Background(), snap)

	if first.Signals != second.Signals ||
		first.ConfidenceScore != second.ConfidenceScore ||
		first.IsBusinessRegistrationForm != second.IsBusinessRegistrationForm ||
		first.Jurisdiction != second.Jurisdiction {
		t.Errorf("repeated classification diverged: %+v vs %+v", first, second)
	}
}

func TestClassifier_Classify_EmptySnapshot(t *testing.T) {
	c := newTestClassifier()

	result := c.Classify(context.Background(), &domain.PageSnapshot{})

	if result.ConfidenceScore != 0 {
		t.Errorf("ConfidenceScore = %d, want 0", result.ConfidenceScore)
	}
	if result.IsBusinessRegistrationForm {
		t.Error("empty snapshot must classify negative")
	}
	if result.Jurisdiction != "" {
		t.Errorf("Jurisdiction = %q, want empty", result.Jurisdiction)
	}
	if result.Error != "" {
		t.Errorf("empty input is not a failure, got marker %q", result.Error)
	}
}

func TestClassifier_Classify_DegradesFailedSignal(t *testing.T) {
	c := classifier.NewClassifier(logger.NewNop(), nil, classifier.Config{
		Version: testVersion,
		Content: failingScorer{},
	})
	snap := registrationSnapshot()

	result := c.Classify(context.Background(), snap)

	if result.Error != "" {
		t.Fatalf("single signal failure must not set the error marker, got %q", result.Error)
	}
	if result.Signals.Content != 0 {
		t.Errorf("failed content signal = %d, want 0", result.Signals.Content)
	}
	// url 65, content degraded to 0, form 20: round(26 + 0 + 4) = 30.
	if result.ConfidenceScore != 30 {
		t.Errorf("ConfidenceScore = %d, want 30", result.ConfidenceScore)
	}
	if result.IsBusinessRegistrationForm {
		t.Error("degraded score must flip the verdict negative")
	}
}

func TestClassifier_Classify_TotalFailure(t *testing.T) {
	c := classifier.NewClassifier(logger.NewNop(), nil, classifier.Config{
		Version: testVersion,
		URL:     failingScorer{},
		Content: failingScorer{},
		Form:    failingFormScorer{},
	})

	result := c.Classify(context.Background(), registrationSnapshot())

	if result.Error == "" {
		t.Fatal("expected error marker when every analyzer fails")
	}
	if result.IsBusinessRegistrationForm || result.ConfidenceScore != 0 {
		t.Errorf("total failure must yield the zero negative verdict, got %+v", result)
	}
	if result.Jurisdiction != "" {
		t.Errorf("total failure must not infer a jurisdiction, got %q", result.Jurisdiction)
	}
}

func TestClassifier_Classify_NilSnapshot(t *testing.T) {
	result := newTestClassifier().Classify(context.Background(), nil)

	if result.Error == "" {
		t.Fatal("expected error marker for nil snapshot")
	}
	if result.IsBusinessRegistrationForm {
		t.Error("nil snapshot must classify negative")
	}
}

func TestClassifier_ClassifyBatch(t *testing.T) {
	c := newTestClassifier()
	snaps := []*domain.PageSnapshot{
		registrationSnapshot(),
		{PageID: "tab-9", URL: "https://example.com/", VisibleText: "nothing here"},
	}

	results := c.ClassifyBatch(context.Background(), snaps)

	if len(results) != len(snaps) {
		t.Fatalf("got %d results, want %d", len(results), len(snaps))
	}
	if !results[0].IsBusinessRegistrationForm {
		t.Error("first snapshot should classify positive")
	}
	if results[1].IsBusinessRegistrationForm {
		t.Error("second snapshot should classify negative")
	}
	if results[1].PageID != "tab-9" {
		t.Errorf("results must align with input order, got %q", results[1].PageID)
	}
}
