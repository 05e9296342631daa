// Package identity holds the name and description a template is instantiated
// with, plus every identifier derived from them.
package identity

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	oerrors "github.com/asaapi/plugin-init/internal/errors"
)

// Template identity. These are the literal tokens the pristine template ships
// with; they are not configurable.
const (
	// SourceToken is the identifier used in sources, the solution and project names.
	SourceToken = "PluginTemplate"

	// ProjectToken is the base name of the vcxproj file family.
	ProjectToken = "AsaApi.Plugins.Template"

	// ProjectFileToken is the segment of ProjectToken swapped in file names.
	ProjectFileToken = "Template"

	// ManifestPrefix prefixes the vcpkg package name.
	ManifestPrefix = "asa-api-plugin"

	// ManifestToken is the vcpkg package name of the pristine template.
	ManifestToken = ManifestPrefix + "-template"

	// RootNamespaceToken is the RootNamespace of the pristine project.
	RootNamespaceToken = "AsaApiPluginsTemplate"

	// ExportMacroToken is the DLL export macro of the pristine project.
	ExportMacroToken = "ASAAPIPLUGINSTEMPLATE_EXPORTS"
)

// MaxNameLength bounds the project name.
const MaxNameLength = 64

var cppIdentRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Identity is the project the template is instantiated as. Built once from
// the command line and never mutated.
type Identity struct {
	Name        string `validate:"required,max=64,cppident"`
	Description string
	Slug        string `validate:"required"`
}

// New validates name and returns the identity. Description is free text.
func New(name, description string) (Identity, error) {
	id := Identity{
		Name:        name,
		Description: description,
		Slug:        strings.ToLower(name),
	}
	if err := id.Validate(); err != nil {
		return Identity{}, err
	}
	return id, nil
}

// Validate checks the identity against its struct tags.
func (id Identity) Validate() error {
	validate := validator.New()

	if err := validate.RegisterValidation("cppident", validateCppIdent); err != nil {
		return err
	}

	if err := validate.Struct(id); err != nil {
		return prettyPrintValidationError(id.Name, err)
	}
	return nil
}

func validateCppIdent(fl validator.FieldLevel) bool {
	return cppIdentRegex.MatchString(fl.Field().String())
}

func prettyPrintValidationError(name string, err error) error {
	var validationErr validator.ValidationErrors
	if !errors.As(err, &validationErr) {
		return err
	}

	hint := "Use letters, digits and underscores, starting with a letter or underscore (e.g. MyPlugin)."
	msgs := make([]string, 0, len(validationErr))
	for _, fe := range validationErr {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("field '%s' is required", fe.StructField()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("field '%s' must have a maximum length of %s", fe.StructField(), fe.Param()))
		case "cppident":
			msgs = append(msgs, fmt.Sprintf("field '%s' must be a valid C++ identifier", fe.StructField()))
		default:
			msgs = append(msgs, fe.Error())
		}
	}

	return oerrors.NewValidationError(strings.Join(msgs, "; "), fmt.Sprintf("name %q", name), hint)
}

// ManifestName is the vcpkg package name, e.g. asa-api-plugin-foo.
func (id Identity) ManifestName() string {
	return ManifestPrefix + "-" + id.Slug
}

// ProjectFileBase is the vcxproj family base name, e.g. AsaApi.Plugins.Foo.
func (id Identity) ProjectFileBase() string {
	return strings.Replace(ProjectToken, ProjectFileToken, id.Name, 1)
}

// RootNamespace is the project RootNamespace, e.g. AsaApiPluginsFoo.
func (id Identity) RootNamespace() string {
	return "AsaApiPlugins" + id.Name
}

// ExportMacro is the DLL export macro, e.g. ASAAPIPLUGINSFOO_EXPORTS.
func (id Identity) ExportMacro() string {
	return "ASAAPIPLUGINS" + strings.ToUpper(id.Name) + "_EXPORTS"
}
