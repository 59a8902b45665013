// Package workflow computes labels, badges and offered actions for scopes and documents.
//
// Every function here is pure: it takes a status (and for documents a type and the
// viewer) and returns what to show. The upstream API remains the only authority on
// transitions; a status computed here is never written back.
package workflow

// Viewer is the role group a row is rendered for.
type Viewer string

// Viewer constants.
const (
	FrontOfficeViewer Viewer = "front_office"
	BackOfficeViewer  Viewer = "back_office"
)

// IsBackOffice reports whether the viewer reviews and routes work.
func (v Viewer) IsBackOffice() bool {
	return v == BackOfficeViewer
}

// Action identifies an operation a row offers.
type Action string

// Action constants.
const (
	ActionStartWork       Action = "start_work"
	ActionEdit            Action = "edit"
	ActionSubmitForReview Action = "submit_for_review"
	ActionReview          Action = "review"
	ActionSign            Action = "sign"
	ActionSaveToDrive     Action = "save_to_drive"
	ActionDownload        Action = "download"
)

// ActionOption is an offered action with its button text.
type ActionOption struct {
	Action Action `json:"action"`
	Label  string `json:"label"`
}

// Badge is the rendered status chip.
type Badge struct {
	Label string `json:"label"`
	Class string `json:"class"`
}

// GenericBadgeClass is used for any status outside the known enumeration.
const GenericBadgeClass = "badge--status"

// NotSpecified is shown in place of absent optional fields.
const NotSpecified = "Not specified"

// OrNotSpecified returns value, or NotSpecified when it is empty.
func OrNotSpecified(value string) string {
	if value == "" {
		return NotSpecified
	}
	return value
}

// HasAction reports whether action is among options.
func HasAction(options []ActionOption, action Action) bool {
	for _, o := range options {
		if o.Action == action {
			return true
		}
	}
	return false
}
