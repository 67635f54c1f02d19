// Package session owns the view state of one interactive evaluation session.
//
// The state machine has four mutually exclusive views and is cyclical:
// Login -> Profile -> Dashboard <-> PlatformDetail. Exactly one view is
// active at any time. The session is single-writer: only the
// interactive loop mutates it, in response to completed user actions or
// completed analysis responses.
package session

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	apperrors "stock-evaluator/internal/errors"
	"stock-evaluator/internal/logging"
	"stock-evaluator/internal/models"
)

// View identifies one of the four application screens.
type View int

const (
	ViewLogin View = iota
	ViewProfile
	ViewDashboard
	ViewPlatformDetail
)

// String returns the view's name.
func (v View) String() string {
	switch v {
	case ViewLogin:
		return "LOGIN"
	case ViewProfile:
		return "PROFILE"
	case ViewDashboard:
		return "DASHBOARD"
	case ViewPlatformDetail:
		return "PLATFORM_DETAIL"
	default:
		return "UNKNOWN"
	}
}

// Session holds all state for one run of the application: the active
// view, the session profile, and the last loaded analysis result with
// its simulated candle series. StockData and candles are replaced
// wholesale on each search, never patched.
type Session struct {
	ID      string
	view    View
	profile models.UserProfile

	stock    *models.StockData
	candles  []models.Candle
	selected *models.PlatformMetric

	logger zerolog.Logger
}

// New creates a session in the Login view with the default profile.
func New(logger zerolog.Logger) *Session {
	id := uuid.New().String()
	return &Session{
		ID:      id,
		view:    ViewLogin,
		profile: models.DefaultProfile(),
		logger:  logging.WithSession(logger, id),
	}
}

// View returns the raw active view tag.
func (s *Session) View() View {
	return s.view
}

// EffectiveView returns the view that should actually render. The
// PlatformDetail screen requires both a selected platform and a loaded
// stock result; absent either, the Dashboard renders instead of
// erroring.
func (s *Session) EffectiveView() View {
	if s.view == ViewPlatformDetail && (s.selected == nil || s.stock == nil) {
		return ViewDashboard
	}
	return s.view
}

// Profile returns the session profile.
func (s *Session) Profile() models.UserProfile {
	return s.profile
}

// Stock returns the last loaded analysis result, or nil before the
// first successful search.
func (s *Session) Stock() *models.StockData {
	return s.stock
}

// Candles returns the simulated series for the loaded stock.
func (s *Session) Candles() []models.Candle {
	return s.candles
}

// SelectedPlatform returns the platform chosen for the detail view, or
// nil when none is selected.
func (s *Session) SelectedPlatform() *models.PlatformMetric {
	return s.selected
}

// Continue moves from the Login view to the Profile questionnaire.
func (s *Session) Continue() error {
	if s.view != ViewLogin {
		return apperrors.NewTransitionError(s.view.String(), ViewProfile.String(), "continue is only valid from login")
	}
	s.setView(ViewProfile)
	return nil
}

// SubmitProfile stores the questionnaire answers as the new session
// profile and moves to the Dashboard. The profile is immutable until
// the next submission.
func (s *Session) SubmitProfile(profile models.UserProfile) error {
	if s.view != ViewProfile {
		return apperrors.NewTransitionError(s.view.String(), ViewDashboard.String(), "profile can only be submitted from the questionnaire")
	}
	if profile.Capital < 0 || profile.Capital > 3 {
		return apperrors.NewValidationError("capital", profile.Capital, "must be a bucket in 0-3")
	}
	if profile.RiskTolerance < 0 || profile.RiskTolerance > 2 {
		return apperrors.NewValidationError("risk_tolerance", profile.RiskTolerance, "must be a bucket in 0-2")
	}
	if profile.Experience < 0 {
		return apperrors.NewValidationError("experience", profile.Experience, "must be non-negative")
	}
	s.profile = profile
	s.setView(ViewDashboard)
	return nil
}

// SetResult replaces the loaded analysis result and its candle series
// wholesale. Any previous platform selection is cleared.
func (s *Session) SetResult(stock *models.StockData, candles []models.Candle) {
	s.stock = stock
	s.candles = candles
	s.selected = nil
}

// SelectPlatform selects a platform row by index and moves to the
// PlatformDetail view.
func (s *Session) SelectPlatform(index int) error {
	if s.view != ViewDashboard {
		return apperrors.NewTransitionError(s.view.String(), ViewPlatformDetail.String(), "platforms can only be selected from the dashboard")
	}
	if s.stock == nil {
		return apperrors.ErrNoStockLoaded
	}
	if index < 0 || index >= len(s.stock.Platforms) {
		return apperrors.NewValidationError("platform", index, "index out of range")
	}
	s.selected = &s.stock.Platforms[index]
	s.setView(ViewPlatformDetail)
	return nil
}

// Back returns from the PlatformDetail view to the Dashboard.
func (s *Session) Back() error {
	if s.view != ViewPlatformDetail {
		return apperrors.NewTransitionError(s.view.String(), ViewDashboard.String(), "back is only valid from platform detail")
	}
	s.selected = nil
	s.setView(ViewDashboard)
	return nil
}

func (s *Session) setView(v View) {
	logging.LogViewChange(s.logger, s.view.String(), v.String())
	s.view = v
}
