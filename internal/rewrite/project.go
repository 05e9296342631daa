package rewrite

import "github.com/asaapi/plugin-init/internal/identity"

// ProjectFile is the IDE project descriptor of the pristine template.
const ProjectFile = identity.ProjectToken + ".vcxproj"

// NewProjectRewriter rewrites the compile items, namespace, project name and
// export macro of the project descriptor.
func NewProjectRewriter() Component {
	return &descriptorRewriter{
		name:  "project",
		path:  ProjectFile,
		rules: projectRules,
	}
}

func projectRules(id identity.Identity) []LineRule {
	return []LineRule{
		LiteralRule(
			`<ClCompile Include="Source\`+identity.SourceToken+`.cpp" />`,
			`<ClCompile Include="Source\`+id.Name+`.cpp" />`,
			20,
		),
		LiteralRule(
			`<ClInclude Include="Source\Public\`+identity.SourceToken+`.h" />`,
			`<ClInclude Include="Source\Public\`+id.Name+`.h" />`,
			30,
		),
		LiteralRule(
			`<RootNamespace>`+identity.RootNamespaceToken+`</RootNamespace>`,
			`<RootNamespace>`+id.RootNamespace()+`</RootNamespace>`,
			40,
		),
		LiteralRule(
			`<ProjectName>`+identity.SourceToken+`</ProjectName>`,
			`<ProjectName>`+id.Name+`</ProjectName>`,
			42,
		),
		LiteralRule(identity.ExportMacroToken, id.ExportMacro(), 81),
	}
}
