package quiz

// SessionState is the reload-surviving "overlay open" flag of one page session.
type SessionState interface {
	MarkOpenAcrossReload()
	ConsumeOpenFlagIfSet() bool
	ClearOpenFlag()
}

// OpenFlagName is the fixed key of the overlay flag in session storage.
const OpenFlagName = "quizOverlayOpen"

type noopSession struct{}

func (noopSession) MarkOpenAcrossReload()      {}
func (noopSession) ConsumeOpenFlagIfSet() bool { return false }
func (noopSession) ClearOpenFlag()             {}
