package models

// Edit is a server side release edit of one application.
type Edit struct {
    ID                string
    ExpiryTimeSeconds string
}

type ProbeResult struct {
    Package string
    Method  string
    Outcome string // found/not_found/forbidden/error
    Err     error
}
