// Package dashboard holds the client-side application state of the catalog
// UI: the loaded collection, the active filters, the dark mode session and
// the add/edit flow. Every remote call goes through ports.DevicesAPI.
package dashboard

const (
	MsgLoadFailed   = "Failed to load devices. Is the backend running?"
	MsgDeviceFailed = "Failed to load device"
	MsgCreateFailed = "Failed to add device. Please try again."
	MsgUpdateFailed = "Failed to update device. Please try again."
	MsgDeleteFailed = "Failed to delete device."
	MsgUploadFailed = "Failed to upload. Please try again."
	MsgNotAnImage   = "Please select an image file"
	MsgImageTooBig  = "Image must be less than 10MB"
)

// Banner is a failure shown to the user as is. The cause stays reachable
// through errors.Is and errors.As.
type Banner struct {
	Message string
	Err     error
}

func (b *Banner) Error() string {
	return b.Message
}

func (b *Banner) Unwrap() error {
	return b.Err
}

func newBanner(message string, err error) *Banner {
	return &Banner{Message: message, Err: err}
}
