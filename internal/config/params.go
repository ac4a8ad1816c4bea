package config

// Defaults holds the substreams parameters that apply when a request leaves them out.
// Values are already the result of environment > built-in precedence.
type Defaults struct {
	Endpoint   string
	Package    string
	Module     string
	StartBlock string
	StopBlock  string
}

// BuiltinDefaults returns Defaults made only of the built-in fallbacks.
func BuiltinDefaults() Defaults {
	return Defaults{
		Endpoint:   DefaultEndpoint,
		Package:    DefaultPackage,
		Module:     DefaultModule,
		StartBlock: DefaultStartBlock,
		StopBlock:  DefaultStopBlock,
	}
}

// Overrides are per-request values. Empty fields are treated as absent.
type Overrides struct {
	Endpoint   string
	Package    string
	Module     string
	StartBlock string
	StopBlock  string
}

// Params is the fully resolved parameter set for one substreams call.
type Params struct {
	Endpoint   string
	Package    string
	Module     string
	StartBlock string
	StopBlock  string
}

// Resolve applies request > environment > built-in precedence field by field.
// It has no side effects and does not read the process environment.
func (d Defaults) Resolve(o Overrides) Params {
	return Params{
		Endpoint:   pick(o.Endpoint, d.Endpoint, DefaultEndpoint),
		Package:    pick(o.Package, d.Package, DefaultPackage),
		Module:     pick(o.Module, d.Module, DefaultModule),
		StartBlock: pick(o.StartBlock, d.StartBlock, DefaultStartBlock),
		StopBlock:  pick(o.StopBlock, d.StopBlock, DefaultStopBlock),
	}
}

func pick(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
