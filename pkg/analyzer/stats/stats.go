package stats

import (
	"code-analyzer/pkg/analyzer/types"
)

// Summary 是对一张解析表的计数汇总
type Summary struct {
	Elements             int                       `json:"elements"`
	ByKind               map[types.ElementKind]int `json:"byKind"`
	Branches             int                       `json:"branches"`
	Loops                int                       `json:"loops"`
	Returns              int                       `json:"returns"`
	Declarations         int                       `json:"declarations"`
	Assignments          int                       `json:"assignments"`
	Functions            int                       `json:"functions"`
	Placeholders         int                       `json:"placeholders"`
	CyclomaticComplexity int                       `json:"cyclomaticComplexity"`
}

// Summarize counts the rows of table. The complexity figure counts every if,
// else-if and loop row as one decision point.
func Summarize(table types.Table) Summary {
	s := Summary{
		Elements: len(table),
		ByKind:   make(map[types.ElementKind]int),
	}
	for _, e := range table {
		if e.IsPlaceholder() {
			s.Placeholders++
			continue
		}
		s.ByKind[e.Kind]++
		switch {
		case e.Kind.IsBranch():
			s.Branches++
		case e.Kind.IsLoop():
			s.Loops++
		}
		switch e.Kind {
		case types.KindReturnStatement:
			s.Returns++
		case types.KindVariableDeclaration:
			s.Declarations++
		case types.KindAssignmentExpression:
			s.Assignments++
		case types.KindFunctionDeclaration:
			s.Functions++
		}
	}
	s.CyclomaticComplexity = 1 + s.Branches + s.Loops
	return s
}

// Merge adds other into s.
func (s *Summary) Merge(other Summary) {
	if s.ByKind == nil {
		s.ByKind = make(map[types.ElementKind]int)
	}
	s.Elements += other.Elements
	for kind, n := range other.ByKind {
		s.ByKind[kind] += n
	}
	s.Branches += other.Branches
	s.Loops += other.Loops
	s.Returns += other.Returns
	s.Declarations += other.Declarations
	s.Assignments += other.Assignments
	s.Functions += other.Functions
	s.Placeholders += other.Placeholders
	s.CyclomaticComplexity = 1 + s.Branches + s.Loops
}
