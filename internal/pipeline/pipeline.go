package pipeline

// Pipeline runs an ordered sequence of Processor stages over one Context.
type Pipeline struct {
	processors []Processor
}

// New builds a Pipeline from the given stages, run in order.
func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes every stage in order. Stages never abort the pipeline on
// diagnostics (the checker keeps collecting problems instead of
// short-circuiting); later stages are responsible for bailing out early
// on their own if an earlier stage left them nothing usable (e.g. the
// checker stage skips if the parser stage left no Program).
func (p *Pipeline) Run(ctx *Context) *Context {
	for _, proc := range p.processors {
		ctx = proc.Process(ctx)
	}
	return ctx
}

// Standard builds the canonical lex -> parse -> check pipeline.
func Standard() *Pipeline {
	return New(&LexerProcessor{}, &ParserProcessor{}, &CheckerProcessor{})
}
