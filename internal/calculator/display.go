package calculator

import (
	"time"

	"github.com/anyulbade/transfer-calculator/internal/model"
)

const (
	MessageDelay = 800 * time.Millisecond
	OverlayDelay = 1200 * time.Millisecond
)

// Display is what the calculator shows for the current error state.
// OverlayShown records that the overlay was already presented during the
// current episode, so it is not shown twice.
type Display struct {
	ErrorState   model.ErrorState `json:"error_state"`
	ShowAlert    bool             `json:"show_alert"`
	ShowMessage  bool             `json:"show_message"`
	ShowOverlay  bool             `json:"show_overlay"`
	OverlayShown bool             `json:"overlay_shown"`
}

// DisplayTransition is the next Display plus the surfaces that must appear
// later because a loading skeleton is on screen.
type DisplayTransition struct {
	Display        Display
	PendingMessage bool
	PendingOverlay bool
}

// DeriveDisplayState computes the next Display from a freshly derived error
// state. An episode is a run of consecutive derivations with the same
// non-none error type.
func DeriveDisplayState(next model.ErrorState, loading bool, prev Display) DisplayTransition {
	if next.Type == model.ErrorNone || next.Type == "" {
		return DisplayTransition{Display: Display{ErrorState: model.NoError()}}
	}

	sameEpisode := prev.ErrorState.Type == next.Type
	if sameEpisode && next.Type == model.ErrorUSDMarketHours && prev.ErrorState.WaitingHours > 0 {
		// the waiting time quoted in the banner holds for the episode
		next = prev.ErrorState
	}
	out := DisplayTransition{Display: Display{
		ErrorState:   next,
		ShowAlert:    next.Alert != nil,
		OverlayShown: sameEpisode && prev.OverlayShown,
	}}

	if next.Message != nil {
		switch {
		case sameEpisode && prev.ShowMessage:
			out.Display.ShowMessage = true
		case loading:
			out.PendingMessage = true
		default:
			out.Display.ShowMessage = true
		}
	}

	if next.Overlay != nil {
		switch {
		case sameEpisode && prev.ShowOverlay:
			out.Display.ShowOverlay = true
		case out.Display.OverlayShown:
			// already presented this episode
		case loading:
			out.PendingOverlay = true
		default:
			out.Display.ShowOverlay = true
			out.Display.OverlayShown = true
		}
	}

	return out
}
