package hcl_adapter

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/mrsgo/internal/config"
	"github.com/specialistvlad/mrsgo/internal/refstore"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// evalContext is shared by every expression in a description file. The
// classification literals are exposed as variables so that
// `classification = optional` reads naturally.
func evalContext() *hcl.EvalContext {
	vars := make(map[string]cty.Value, len(refstore.Classifications))
	for _, c := range refstore.Classifications {
		vars[strings.ToLower(c.String())] = cty.StringVal(c.String())
	}
	return &hcl.EvalContext{
		Variables: vars,
		Functions: map[string]function.Function{
			"format": stdlib.FormatFunc,
			"join":   stdlib.JoinFunc,
			"lower":  stdlib.LowerFunc,
			"upper":  stdlib.UpperFunc,
		},
	}
}

// translateFile converts the decoded blocks of one file into models, one per
// structure block. Package declarations travel with the first model.
func translateFile(file string, root *fileRoot) ([]*config.Model, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	first := &config.Model{}
	for _, p := range root.Packages {
		first.Packages = appendPackages(first.Packages, "", p)
	}
	if len(root.Structures) == 0 {
		return []*config.Model{first}, diags
	}

	ctx := evalContext()
	models := make([]*config.Model, 0, len(root.Structures))
	for i, sb := range root.Structures {
		model := &config.Model{}
		if i == 0 {
			model = first
		}
		model.Structure = &config.Structure{Name: sb.Name}
		for _, lb := range sb.Layers {
			layer := &config.Layer{Name: lb.Name}
			for _, mb := range lb.Metamodels {
				mm, mmDiags := translateMetamodel(ctx, mb)
				diags = append(diags, mmDiags...)
				if mm != nil {
					mm.Origin = file
					layer.Metamodels = append(layer.Metamodels, mm)
				}
			}
			model.Structure.Layers = append(model.Structure.Layers, layer)
		}
		models = append(models, model)
	}
	return models, diags
}

func appendPackages(out []string, prefix string, p *packageBlock) []string {
	name := p.Name
	if prefix != "" {
		name = prefix + "." + p.Name
	}
	out = append(out, name)
	for _, sub := range p.Packages {
		out = appendPackages(out, name, sub)
	}
	return out
}

func translateMetamodel(ctx *hcl.EvalContext, mb *metamodelBlock) (*config.Metamodel, hcl.Diagnostics) {
	mm := &config.Metamodel{Name: mb.Name}
	if mb.Package != nil {
		mm.Package = *mb.Package
	}

	location, diags := evalString(ctx, mb.Location, "location")
	mm.Location = location

	for _, rb := range mb.References {
		c, cDiags := evalClassification(ctx, rb.Classification)
		diags = append(diags, cDiags...)
		mm.References = append(mm.References, &config.Reference{Target: rb.Target, Classification: c})
	}
	if diags.HasErrors() {
		return nil, diags
	}
	return mm, diags
}

// evalString evaluates an optional attribute that must convert to a string.
// A missing attribute yields the empty string.
func evalString(ctx *hcl.EvalContext, expr hcl.Expression, attr string) (string, hcl.Diagnostics) {
	if expr == nil {
		return "", nil
	}
	val, diags := expr.Value(ctx)
	if diags.HasErrors() || val.IsNull() {
		return "", diags
	}
	str, err := convert.Convert(val, cty.String)
	if err != nil || !str.IsKnown() {
		return "", diags.Append(&hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid " + attr,
			Detail:   fmt.Sprintf("The %s must be a string, got %s.", attr, val.Type().FriendlyName()),
			Subject:  expr.Range().Ptr(),
		})
	}
	return str.AsString(), diags
}

// evalClassification evaluates a classification attribute. It accepts the
// literals MANDATORY and OPTIONAL in any case or their integer values.
// A missing attribute means MANDATORY.
func evalClassification(ctx *hcl.EvalContext, expr hcl.Expression) (refstore.Classification, hcl.Diagnostics) {
	if expr == nil {
		return refstore.Mandatory, nil
	}
	val, diags := expr.Value(ctx)
	if diags.HasErrors() {
		return refstore.Mandatory, diags
	}
	if val.IsNull() {
		return refstore.Mandatory, diags
	}

	var (
		c   refstore.Classification
		err error
	)
	switch {
	case !val.IsKnown():
		err = errors.New("value is not known")
	case val.Type() == cty.String:
		c, err = refstore.ParseClassification(val.AsString())
	case val.Type() == cty.Number:
		n, acc := val.AsBigFloat().Int64()
		if acc != big.Exact {
			err = fmt.Errorf("%s is not an integer", val.AsBigFloat().String())
			break
		}
		c, err = refstore.ClassificationFromValue(int(n))
	default:
		err = fmt.Errorf("expected a string or number, got %s", val.Type().FriendlyName())
	}
	if err != nil {
		return refstore.Mandatory, diags.Append(&hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid classification",
			Detail:   err.Error(),
			Subject:  expr.Range().Ptr(),
		})
	}
	return c, diags
}
