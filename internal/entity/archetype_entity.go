package entity

// ArchetypeProfile is the result of the onboarding diagnosis quiz.
// Set at most once per user; read-only from this service's perspective.
type ArchetypeProfile struct {
	Type     string
	Shadow   string
	Solution string
}
