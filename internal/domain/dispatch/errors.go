package dispatch

import "errors"

var (
	ErrMissingCredentials = errors.New("onlinebrief24 credentials are not configured")
	ErrNoPendingFiles     = errors.New("no pending files in the upload folder")
)
