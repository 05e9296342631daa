package rewrite

import "github.com/asaapi/plugin-init/internal/identity"

// SolutionFile is the Visual Studio solution of the pristine template.
const SolutionFile = identity.SourceToken + ".sln"

// solutionProjectHint is the line of the project declaration in the pristine solution.
const solutionProjectHint = 6

// NewSolutionRewriter rewrites the project declaration of the solution file:
// the project name and the vcxproj path it references.
func NewSolutionRewriter() Component {
	return &descriptorRewriter{
		name:  "solution",
		path:  SolutionFile,
		rules: solutionRules,
	}
}

func solutionRules(id identity.Identity) []LineRule {
	projectFile := identity.ProjectToken + ".vcxproj"
	anchor := Literal(projectFile, id.ProjectFileBase()+".vcxproj")

	return []LineRule{{
		Anchor: anchor.Pattern,
		Hint:   solutionProjectHint,
		Subs: []Substitution{
			Literal(identity.SourceToken, id.Name),
			anchor,
		},
	}}
}
