package symbol

// Predefined holds the fixed set of well-known symbols created once per
// agent: the core control vocabulary plus the protocol vocabularies of
// the episodic-memory, semantic-memory, and reinforcement-learning
// subsystems. Each entry goes through the ordinary Make path, so these
// symbols are structurally indistinguishable from user-created ones;
// only the registry's agent-lifetime reference differs.
type Predefined struct {
	table *Table
	held  []Symbol

	// Core control vocabulary.
	ProblemSpace      *StringConstant
	State             *StringConstant
	Operator          *StringConstant
	Superstate        *StringConstant
	IO                *StringConstant
	Object            *StringConstant
	Attribute         *StringConstant
	Impasse           *StringConstant
	Choices           *StringConstant
	None              *StringConstant
	ConstraintFailure *StringConstant
	NoChange          *StringConstant
	Multiple          *StringConstant
	ItemCount         *StringConstant
	NonNumericCount   *StringConstant
	Conflict          *StringConstant
	Tie               *StringConstant
	Item              *StringConstant
	NonNumeric        *StringConstant
	Quiescence        *StringConstant
	T                 *StringConstant
	Nil               *StringConstant
	Type              *StringConstant
	Goal              *StringConstant
	Name              *StringConstant
	InputLink         *StringConstant
	OutputLink        *StringConstant

	// Context variables used by the default goal-stack productions.
	TSContext  *Variable
	TOContext  *Variable
	SSSContext *Variable
	SSOContext *Variable
	SSContext  *Variable
	SOContext  *Variable
	SContext   *Variable
	OContext   *Variable
	Wait       *Variable

	// Reinforcement-learning protocol.
	RewardLink *StringConstant
	Reward     *StringConstant
	Value      *StringConstant

	// Episodic-memory protocol.
	Episodic           *StringConstant
	Command            *StringConstant
	Result             *StringConstant
	Retrieved          *StringConstant
	Status             *StringConstant
	MatchScore         *StringConstant
	CueSize            *StringConstant
	NormalizedScore    *StringConstant
	MatchCardinality   *StringConstant
	MemoryID           *StringConstant
	PresentID          *StringConstant
	NoMemory           *StringConstant
	GraphMatch         *StringConstant
	GraphMatchMapping  *StringConstant
	Retrieve           *StringConstant
	Next               *StringConstant
	Previous           *StringConstant
	Query              *StringConstant
	NegQuery           *StringConstant
	Before             *StringConstant
	After              *StringConstant
	Prohibit           *StringConstant
	Yes                *StringConstant
	No                 *StringConstant
	Success            *StringConstant
	Failure            *StringConstant
	BadCommand         *StringConstant

	// Semantic-memory protocol (shares command/result/status vocabulary
	// with the episodic protocol above).
	Semantic           *StringConstant
	Store              *StringConstant
	MathQuery          *StringConstant
	MathLess           *StringConstant
	MathGreater        *StringConstant
	MathLessOrEqual    *StringConstant
	MathGreaterOrEqual *StringConstant
	MathMax            *StringConstant
	MathMin            *StringConstant
}

// NewPredefined creates the registry's full vocabulary in t, holding
// one reference per slot for the agent's lifetime.
func NewPredefined(t *Table) *Predefined {
	p := &Predefined{table: t}

	sc := func(name string) *StringConstant {
		s := t.MakeString(name)
		p.held = append(p.held, s)
		return s
	}
	vr := func(name string) *Variable {
		v := t.MakeVariable(name)
		p.held = append(p.held, v)
		return v
	}

	p.ProblemSpace = sc("problem-space")
	p.State = sc("state")
	p.Operator = sc("operator")
	p.Superstate = sc("superstate")
	p.IO = sc("io")
	p.Object = sc("object")
	p.Attribute = sc("attribute")
	p.Impasse = sc("impasse")
	p.Choices = sc("choices")
	p.None = sc("none")
	p.ConstraintFailure = sc("constraint-failure")
	p.NoChange = sc("no-change")
	p.Multiple = sc("multiple")
	p.ItemCount = sc("item-count")
	p.NonNumericCount = sc("non-numeric-count")
	p.Conflict = sc("conflict")
	p.Tie = sc("tie")
	p.Item = sc("item")
	p.NonNumeric = sc("non-numeric")
	p.Quiescence = sc("quiescence")
	p.T = sc("t")
	p.Nil = sc("nil")
	p.Type = sc("type")
	p.Goal = sc("goal")
	p.Name = sc("name")
	p.InputLink = sc("input-link")
	p.OutputLink = sc("output-link")

	p.TSContext = vr("<ts>")
	p.TOContext = vr("<to>")
	p.SSSContext = vr("<sss>")
	p.SSOContext = vr("<sso>")
	p.SSContext = vr("<ss>")
	p.SOContext = vr("<so>")
	p.SContext = vr("<s>")
	p.OContext = vr("<o>")
	p.Wait = vr("wait")

	p.RewardLink = sc("reward-link")
	p.Reward = sc("reward")
	p.Value = sc("value")

	p.Episodic = sc("epmem")
	p.Command = sc("command")
	p.Result = sc("result")
	p.Retrieved = sc("retrieved")
	p.Status = sc("status")
	p.MatchScore = sc("match-score")
	p.CueSize = sc("cue-size")
	p.NormalizedScore = sc("normalized-match-score")
	p.MatchCardinality = sc("match-cardinality")
	p.MemoryID = sc("memory-id")
	p.PresentID = sc("present-id")
	p.NoMemory = sc("no-memory")
	p.GraphMatch = sc("graph-match")
	p.GraphMatchMapping = sc("mapping")
	p.Retrieve = sc("retrieve")
	p.Next = sc("next")
	p.Previous = sc("previous")
	p.Query = sc("query")
	p.NegQuery = sc("neg-query")
	p.Before = sc("before")
	p.After = sc("after")
	p.Prohibit = sc("prohibit")
	p.Yes = sc("yes")
	p.No = sc("no")
	p.Success = sc("success")
	p.Failure = sc("failure")
	p.BadCommand = sc("bad-cmd")

	p.Semantic = sc("smem")
	p.Store = sc("store")
	p.MathQuery = sc("math-query")
	p.MathLess = sc("less")
	p.MathGreater = sc("greater")
	p.MathLessOrEqual = sc("less-or-equal")
	p.MathGreaterOrEqual = sc("greater-or-equal")
	p.MathMax = sc("max")
	p.MathMin = sc("min")

	return p
}

// Count returns the number of held registry slots.
func (p *Predefined) Count() int { return len(p.held) }

// Release removes exactly one reference from every slot populated at
// construction. Order is unconstrained: the predefined symbols have no
// relationships among themselves. The registry must not be used after
// Release.
func (p *Predefined) Release() error {
	for _, sym := range p.held {
		if err := p.table.RemoveRef(sym); err != nil {
			return err
		}
	}
	p.held = nil
	return nil
}
