package page

import (
	"errors"
	"strings"

	"github.com/goliatone/go-adminkit/pkg/form"
	"github.com/goliatone/go-adminkit/pkg/formstate"
)

// MsgFixErrors replaces the alert text when a submission failed field
// validation; the field messages render next to their controls.
const MsgFixErrors = "Please correct the highlighted fields."

// Modal is a dialog hosting a form. The footer submit button targets the form
// by id so it can live outside the form element.
type Modal struct {
	ID     string    `json:"id"`
	Title  string    `json:"title"`
	Open   bool      `json:"open"`
	Form   form.Form `json:"form"`
	Error  string    `json:"error,omitempty"`
	Submit string    `json:"submit"`
	// Cancel is the label of the dismiss action; CloseHref is where it leads.
	Cancel    string `json:"cancel"`
	CloseHref string `json:"close_href,omitempty"`
	Loading   bool   `json:"loading,omitempty"`
}

// ModalOptions configures FormModal.
type ModalOptions struct {
	ID        string
	Title     string
	Open      bool
	CloseHref string
	// Err is the submission error shown in the alert; nil hides it.
	Err error
}

// FormModal wraps f in a modal. The title falls back to the form title.
func FormModal(f form.Form, opts ModalOptions) Modal {
	modal := Modal{
		ID:        strings.TrimSpace(opts.ID),
		Title:     firstNonEmpty(opts.Title, f.Title),
		Open:      opts.Open,
		Form:      f,
		Error:     AlertMessage(opts.Err),
		Submit:    f.SubmitLabel,
		Cancel:    firstNonEmpty(f.CancelLabel, form.DefaultCancelLabel),
		CloseHref: firstNonEmpty(opts.CloseHref, f.CancelHref),
		Loading:   f.Loading,
	}
	if modal.ID == "" {
		modal.ID = f.ID + "-modal"
	}
	if modal.Error != "" || f.Invalid {
		// a failed submission keeps the dialog on screen
		modal.Open = true
	}
	return modal
}

// AlertMessage turns a submission error into alert text.
func AlertMessage(err error) string {
	if err == nil {
		return ""
	}
	var verr *formstate.ValidationError
	if errors.As(err, &verr) {
		if len(verr.Form) > 0 {
			return strings.Join(verr.Form, " ")
		}
		return MsgFixErrors
	}
	return err.Error()
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
