package exitcodes

// Exit codes for the repo-sweep CLI
// These codes form the operational contract with CI/CD and operators
const (
	Success         = 0 // Successful execution
	InvalidConfig   = 2 // Configuration file or arguments invalid
	SafetyViolation = 3 // Safety validator blocked a sweep target
	RuntimeError    = 4 // Sweep failed (listing or finalize error)
	CloneFailed     = 5 // The external checkout executable failed
)
