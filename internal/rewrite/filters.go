package rewrite

import "github.com/asaapi/plugin-init/internal/identity"

// FiltersFile is the IDE filter descriptor of the pristine template.
const FiltersFile = identity.ProjectToken + ".vcxproj.filters"

// NewFiltersRewriter points the filter entries at the renamed source and header.
func NewFiltersRewriter() Component {
	return &descriptorRewriter{
		name:  "filters",
		path:  FiltersFile,
		rules: filtersRules,
	}
}

func filtersRules(id identity.Identity) []LineRule {
	return []LineRule{
		LiteralRule(
			`<ClCompile Include="Source\`+identity.SourceToken+`.cpp">`,
			`<ClCompile Include="Source\`+id.Name+`.cpp">`,
			45,
		),
		LiteralRule(
			`<ClInclude Include="Source\Public\`+identity.SourceToken+`.h">`,
			`<ClInclude Include="Source\Public\`+id.Name+`.h">`,
			59,
		),
	}
}
