package manifest

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/hcl/printer"
)

// encodeHCL renders a project as HCL. The hcl package has no struct
// encoder, so the document is built as text and normalized by the printer.
func encodeHCL(p *Project) ([]byte, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "name = %s\n", strconv.Quote(p.Name))
	if p.Version != "" {
		fmt.Fprintf(&b, "version = %s\n", strconv.Quote(p.Version))
	}
	if len(p.ProjectPaths) > 0 {
		quoted := make([]string, len(p.ProjectPaths))
		for i, path := range p.ProjectPaths {
			quoted[i] = strconv.Quote(path)
		}
		fmt.Fprintf(&b, "projects = [%s]\n", strings.Join(quoted, ", "))
	}

	for _, d := range p.Dependencies {
		fmt.Fprintf(&b, "\ndependency %s {\n", strconv.Quote(d.Name))
		fmt.Fprintf(&b, "repository = %s\n", strconv.Quote(d.Repository))
		if d.Branch != "" {
			fmt.Fprintf(&b, "branch = %s\n", strconv.Quote(d.Branch))
		}
		if d.Project != "" {
			fmt.Fprintf(&b, "project = %s\n", strconv.Quote(d.Project))
		}
		b.WriteString("}\n")
	}

	if len(p.ResolveOverrides) > 0 {
		names := make([]string, 0, len(p.ResolveOverrides))
		for name := range p.ResolveOverrides {
			names = append(names, name)
		}
		sort.Strings(names)

		b.WriteString("\nresolve_overrides {\n")
		for _, name := range names {
			fmt.Fprintf(&b, "%s = %s\n", strconv.Quote(name), strconv.Quote(p.ResolveOverrides[name]))
		}
		b.WriteString("}\n")
	}

	return printer.Format([]byte(b.String()))
}
