package shell

var (
	ResolveEnvironment = resolveEnvironment
	LookPath           = lookPath
	FindExecutable     = findExecutable
)
