package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

const (
	versionHCLFile   = "version.hcl"
	versionAttribute = "version"
)

// HCLManifestRepository reads and writes the top-level version attribute of a version.hcl file:
//
//	version = "1.2.3"
type HCLManifestRepository struct{}

// NewHCLManifestRepository creates a new version.hcl manifest repository.
func NewHCLManifestRepository() *HCLManifestRepository {
	return &HCLManifestRepository{}
}

func (it *HCLManifestRepository) Name() string { return versionHCLFile }

func (it *HCLManifestRepository) Detect(dir string) bool {
	return fileExists(filepath.Join(dir, versionHCLFile))
}

func (it *HCLManifestRepository) ReadVersion(dir string) (string, error) {
	path := filepath.Join(dir, versionHCLFile)
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", versionHCLFile, err)
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(content, path)
	if diags.HasErrors() {
		return "", fmt.Errorf("failed to parse %s: %s", versionHCLFile, diags.Error())
	}

	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return "", fmt.Errorf("failed to read attributes of %s: %s", versionHCLFile, diags.Error())
	}
	attr, ok := attrs[versionAttribute]
	if !ok {
		return "", fmt.Errorf("%s: %w", versionHCLFile, ErrVersionNotFound)
	}

	value, diags := attr.Expr.Value(&hcl.EvalContext{})
	if diags.HasErrors() || value.Type() != cty.String {
		return "", fmt.Errorf("%s: version must be a string literal", versionHCLFile)
	}
	return value.AsString(), nil
}

func (it *HCLManifestRepository) WriteVersion(dir, version string) (string, error) {
	path := filepath.Join(dir, versionHCLFile)
	err := rewrite(path, func(content []byte) ([]byte, error) {
		file, diags := hclwrite.ParseConfig(content, path, hcl.InitialPos)
		if diags.HasErrors() {
			return nil, fmt.Errorf("invalid HCL: %s", diags.Error())
		}
		file.Body().SetAttributeValue(versionAttribute, cty.StringVal(version))
		return file.Bytes(), nil
	})
	if err != nil {
		return "", err
	}
	return path, nil
}
