package models

import (
	"fmt"
	"strings"

	"github.com/package-url/packageurl-go"
)

type Purl struct {
	packageurl.PackageURL
}

// Dependabot ecosystem names that differ from their purl type.
var ecosystemPurlTypes = map[string]string{
	"pip":      packageurl.TypePyPi,
	"rubygems": packageurl.TypeGem,
	"go":       packageurl.TypeGolang,
	"rust":     packageurl.TypeCargo,
	"actions":  "githubactions",
	"erlang":   "hex",
}

func PurlFromDependency(ecosystem string, name string) (Purl, error) {
	if ecosystem == "" || name == "" {
		return Purl{}, fmt.Errorf("invalid dependency %q in ecosystem %q", name, ecosystem)
	}

	purlType, ok := ecosystemPurlTypes[ecosystem]
	if !ok {
		purlType = strings.ToLower(ecosystem)
	}

	var namespace string
	if purlType == packageurl.TypeMaven {
		if i := strings.Index(name, ":"); i != -1 {
			namespace, name = name[:i], name[i+1:]
		}
	} else if i := strings.LastIndex(name, "/"); i != -1 {
		namespace, name = name[:i], name[i+1:]
	}

	if name == "" {
		return Purl{}, fmt.Errorf("invalid dependency name in ecosystem %q", ecosystem)
	}

	return Purl{PackageURL: *packageurl.NewPackageURL(purlType, namespace, name, "", nil, "")}, nil
}

func (p *Purl) FullName() string {
	name := p.Name
	if p.Namespace != "" {
		name = p.Namespace + "/" + name
	}
	return name
}
