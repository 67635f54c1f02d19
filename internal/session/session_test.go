package session

import (
	"testing"

	"github.com/rs/zerolog"

	apperrors "stock-evaluator/internal/errors"
	"stock-evaluator/internal/models"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	return New(zerolog.Nop())
}

func loadedStock() *models.StockData {
	return &models.StockData{
		Symbol: "600519",
		Name:   "Kweichow Moutai",
		Price:  1800,
		Platforms: []models.PlatformMetric{
			{ID: "p-1", Name: "EastMoney"},
			{ID: "p-2", Name: "Xueqiu"},
			{ID: "p-3", Name: "Tonghuashun"},
		},
	}
}

func advanceToDashboard(t *testing.T, s *Session) {
	t.Helper()
	if err := s.Continue(); err != nil {
		t.Fatalf("Continue: %v", err)
	}
	if err := s.SubmitProfile(models.UserProfile{Name: "T", Capital: 2, RiskTolerance: 1, Experience: 3}); err != nil {
		t.Fatalf("SubmitProfile: %v", err)
	}
}

func TestInitialState(t *testing.T) {
	s := newTestSession(t)

	if s.View() != ViewLogin {
		t.Errorf("initial view: got %s, want LOGIN", s.View())
	}
	if s.ID == "" {
		t.Error("session ID is empty")
	}
	if got := s.Profile(); got != models.DefaultProfile() {
		t.Errorf("initial profile: got %+v", got)
	}
}

func TestFullCycle(t *testing.T) {
	s := newTestSession(t)
	advanceToDashboard(t, s)

	if s.View() != ViewDashboard {
		t.Fatalf("view after submit: got %s", s.View())
	}
	if s.Profile().Capital != 2 || s.Profile().RiskTolerance != 1 {
		t.Errorf("submitted profile not stored: %+v", s.Profile())
	}

	s.SetResult(loadedStock(), []models.Candle{{Date: "06-15"}})

	if err := s.SelectPlatform(0); err != nil {
		t.Fatalf("SelectPlatform: %v", err)
	}
	if s.View() != ViewPlatformDetail {
		t.Errorf("view after select: got %s", s.View())
	}
	if s.SelectedPlatform() == nil || s.SelectedPlatform().ID != "p-1" {
		t.Errorf("selected platform: %+v", s.SelectedPlatform())
	}
	if s.EffectiveView() != ViewPlatformDetail {
		t.Errorf("effective view: got %s", s.EffectiveView())
	}

	if err := s.Back(); err != nil {
		t.Fatalf("Back: %v", err)
	}
	if s.View() != ViewDashboard {
		t.Errorf("view after back: got %s", s.View())
	}
	if s.SelectedPlatform() != nil {
		t.Error("selection not cleared on back")
	}
}

func TestInvalidTransitionsRejected(t *testing.T) {
	s := newTestSession(t)

	var transitionErr *apperrors.TransitionError

	if err := s.Back(); !apperrors.As(err, &transitionErr) {
		t.Errorf("Back from login: got %v", err)
	}
	if err := s.SelectPlatform(0); !apperrors.As(err, &transitionErr) {
		t.Errorf("SelectPlatform from login: got %v", err)
	}
	if err := s.SubmitProfile(models.DefaultProfile()); !apperrors.As(err, &transitionErr) {
		t.Errorf("SubmitProfile from login: got %v", err)
	}

	advanceToDashboard(t, s)
	if err := s.Continue(); !apperrors.As(err, &transitionErr) {
		t.Errorf("Continue from dashboard: got %v", err)
	}
}

func TestSubmitProfileValidation(t *testing.T) {
	cases := []models.UserProfile{
		{Name: "T", Capital: -1, RiskTolerance: 1, Experience: 1},
		{Name: "T", Capital: 4, RiskTolerance: 1, Experience: 1},
		{Name: "T", Capital: 1, RiskTolerance: 3, Experience: 1},
		{Name: "T", Capital: 1, RiskTolerance: 1, Experience: -1},
	}

	for _, profile := range cases {
		s := newTestSession(t)
		if err := s.Continue(); err != nil {
			t.Fatalf("Continue: %v", err)
		}

		var validationErr *apperrors.ValidationError
		if err := s.SubmitProfile(profile); !apperrors.As(err, &validationErr) {
			t.Errorf("SubmitProfile(%+v): got %v, want validation error", profile, err)
		}
		if s.View() != ViewProfile {
			t.Errorf("view moved on invalid profile: %s", s.View())
		}
	}
}

func TestSelectPlatformRequiresStock(t *testing.T) {
	s := newTestSession(t)
	advanceToDashboard(t, s)

	if err := s.SelectPlatform(0); !apperrors.Is(err, apperrors.ErrNoStockLoaded) {
		t.Errorf("got %v, want ErrNoStockLoaded", err)
	}

	s.SetResult(loadedStock(), nil)
	if err := s.SelectPlatform(5); err == nil {
		t.Error("out-of-range platform index accepted")
	}
}

// The PlatformDetail guard: without both a selected platform and loaded
// stock data, the dashboard renders instead.
func TestEffectiveViewGuard(t *testing.T) {
	s := newTestSession(t)
	advanceToDashboard(t, s)
	s.SetResult(loadedStock(), nil)
	if err := s.SelectPlatform(1); err != nil {
		t.Fatalf("SelectPlatform: %v", err)
	}

	// A new search replaces the result wholesale and clears the
	// selection; the stale PlatformDetail view must fall back.
	s.SetResult(loadedStock(), nil)

	if s.View() != ViewPlatformDetail {
		t.Fatalf("raw view: got %s", s.View())
	}
	if s.EffectiveView() != ViewDashboard {
		t.Errorf("effective view: got %s, want DASHBOARD", s.EffectiveView())
	}

	// Absent stock entirely.
	s.SetResult(nil, nil)
	if s.EffectiveView() != ViewDashboard {
		t.Errorf("effective view without stock: got %s", s.EffectiveView())
	}
}

func TestSetResultReplacesWholesale(t *testing.T) {
	s := newTestSession(t)
	advanceToDashboard(t, s)

	first := loadedStock()
	s.SetResult(first, []models.Candle{{Date: "06-14"}, {Date: "06-15"}})

	second := &models.StockData{Symbol: "000001", Platforms: []models.PlatformMetric{{ID: "p-1"}}}
	s.SetResult(second, []models.Candle{{Date: "06-15"}})

	if s.Stock() != second {
		t.Error("stock not replaced")
	}
	if len(s.Candles()) != 1 {
		t.Errorf("candles not replaced: %d", len(s.Candles()))
	}
}
