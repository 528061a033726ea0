package graphdesc

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// HCL mirror structures. The exported model keeps parsed Binding values;
// these keep the raw strings the text form carries.

type fileHCL struct {
	Graph *graphHCL `hcl:"graph,block"`
}

type graphHCL struct {
	Name              string         `hcl:"name,label"`
	InputStreams      []string       `hcl:"input_streams,optional"`
	OutputStreams     []string       `hcl:"output_streams,optional"`
	InputSidePackets  []string       `hcl:"input_side_packets,optional"`
	OutputSidePackets []string       `hcl:"output_side_packets,optional"`
	Nodes             []*nodeHCL     `hcl:"node,block"`
	Generators        []*nodeHCL     `hcl:"generator,block"`
	Executors         []*executorHCL `hcl:"executor,block"`
}

type nodeHCL struct {
	Calculator        string         `hcl:"calculator,label"`
	InputStreams      []string       `hcl:"input_streams,optional"`
	OutputStreams     []string       `hcl:"output_streams,optional"`
	InputSidePackets  []string       `hcl:"input_side_packets,optional"`
	OutputSidePackets []string       `hcl:"output_side_packets,optional"`
	BackEdges         []string       `hcl:"back_edges,optional"`
	Executor          string         `hcl:"executor,optional"`
	SourceLayer       int            `hcl:"source_layer,optional"`
	Options           []*optionsHCL  `hcl:"options,block"`
	StreamHandler     *streamHandlerHCL `hcl:"input_stream_handler,block"`
}

type optionsHCL struct {
	Type string `hcl:"type"`
	Data string `hcl:"data"`
}

type executorHCL struct {
	Name string `hcl:"name,label"`
	Type string `hcl:"type"`
}

type streamHandlerHCL struct {
	Handler string      `hcl:"handler"`
	Options *optionsHCL `hcl:"options,block"`
}

// DecodeHCL parses an HCL graph description. filename is used in
// diagnostics only.
func DecodeHCL(src []byte, filename string) (*Description, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse graph file %s: %s", filename, diags.Error())
	}
	var raw fileHCL
	diags = gohcl.DecodeBody(file.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode graph file %s: %s", filename, diags.Error())
	}
	if raw.Graph == nil {
		return nil, fmt.Errorf("graph file %s contains no graph block", filename)
	}

	d := &Description{
		Name:              raw.Graph.Name,
		InputStreams:      raw.Graph.InputStreams,
		OutputStreams:     raw.Graph.OutputStreams,
		InputSidePackets:  raw.Graph.InputSidePackets,
		OutputSidePackets: raw.Graph.OutputSidePackets,
	}
	for _, e := range raw.Graph.Executors {
		d.Executors = append(d.Executors, Executor{Name: e.Name, Type: e.Type})
	}
	for _, n := range raw.Graph.Nodes {
		node, err := decodeNode(n)
		if err != nil {
			return nil, err
		}
		d.Nodes = append(d.Nodes, node)
	}
	for _, g := range raw.Graph.Generators {
		node, err := decodeNode(g)
		if err != nil {
			return nil, err
		}
		d.Generators = append(d.Generators, node)
	}
	return d, nil
}

func decodeNode(raw *nodeHCL) (*Node, error) {
	n := &Node{
		Calculator:  raw.Calculator,
		BackEdges:   raw.BackEdges,
		Executor:    raw.Executor,
		SourceLayer: raw.SourceLayer,
	}
	groups := []struct {
		src []string
		dst *[]Binding
	}{
		{raw.InputStreams, &n.InputStreams},
		{raw.OutputStreams, &n.OutputStreams},
		{raw.InputSidePackets, &n.InputSidePackets},
		{raw.OutputSidePackets, &n.OutputSidePackets},
	}
	for _, g := range groups {
		for _, s := range g.src {
			b, err := ParseBinding(s)
			if err != nil {
				return nil, fmt.Errorf("node %q: %w", raw.Calculator, err)
			}
			*g.dst = append(*g.dst, b)
		}
	}
	for _, o := range raw.Options {
		n.Options = append(n.Options, OptionsPayload{TypeName: o.Type, Data: []byte(o.Data)})
	}
	if raw.StreamHandler != nil {
		sh := &StreamHandler{Handler: raw.StreamHandler.Handler}
		if raw.StreamHandler.Options != nil {
			sh.Options = &OptionsPayload{
				TypeName: raw.StreamHandler.Options.Type,
				Data:     []byte(raw.StreamHandler.Options.Data),
			}
		}
		n.InputStreamHandler = sh
	}
	return n, nil
}

// EncodeHCL renders the description in its canonical HCL form. Empty
// collections are omitted so the output is stable and minimal.
func (d *Description) EncodeHCL() []byte {
	f := hclwrite.NewEmptyFile()
	graph := f.Body().AppendNewBlock("graph", []string{d.Name}).Body()

	setStringList(graph, "input_streams", d.InputStreams)
	setStringList(graph, "output_streams", d.OutputStreams)
	setStringList(graph, "input_side_packets", d.InputSidePackets)
	setStringList(graph, "output_side_packets", d.OutputSidePackets)

	for _, n := range d.Nodes {
		encodeNode(graph.AppendNewBlock("node", []string{n.Calculator}).Body(), n)
	}
	for _, g := range d.Generators {
		encodeNode(graph.AppendNewBlock("generator", []string{g.Calculator}).Body(), g)
	}
	for _, e := range d.Executors {
		body := graph.AppendNewBlock("executor", []string{e.Name}).Body()
		body.SetAttributeValue("type", cty.StringVal(e.Type))
	}
	return f.Bytes()
}

func encodeNode(body *hclwrite.Body, n *Node) {
	setStringList(body, "input_streams", bindingStrings(n.InputStreams))
	setStringList(body, "output_streams", bindingStrings(n.OutputStreams))
	setStringList(body, "input_side_packets", bindingStrings(n.InputSidePackets))
	setStringList(body, "output_side_packets", bindingStrings(n.OutputSidePackets))
	setStringList(body, "back_edges", n.BackEdges)
	if n.Executor != "" {
		body.SetAttributeValue("executor", cty.StringVal(n.Executor))
	}
	if n.SourceLayer != 0 {
		body.SetAttributeValue("source_layer", cty.NumberIntVal(int64(n.SourceLayer)))
	}
	for _, o := range n.Options {
		opts := body.AppendNewBlock("options", nil).Body()
		opts.SetAttributeValue("type", cty.StringVal(o.TypeName))
		opts.SetAttributeValue("data", cty.StringVal(string(o.Data)))
	}
	if n.InputStreamHandler != nil {
		sh := body.AppendNewBlock("input_stream_handler", nil).Body()
		sh.SetAttributeValue("handler", cty.StringVal(n.InputStreamHandler.Handler))
		if n.InputStreamHandler.Options != nil {
			opts := sh.AppendNewBlock("options", nil).Body()
			opts.SetAttributeValue("type", cty.StringVal(n.InputStreamHandler.Options.TypeName))
			opts.SetAttributeValue("data", cty.StringVal(string(n.InputStreamHandler.Options.Data)))
		}
	}
}

func bindingStrings(bs []Binding) []string {
	out := make([]string, 0, len(bs))
	for _, b := range bs {
		out = append(out, b.String())
	}
	return out
}

func setStringList(body *hclwrite.Body, name string, values []string) {
	if len(values) == 0 {
		return
	}
	vals := make([]cty.Value, 0, len(values))
	for _, v := range values {
		vals = append(vals, cty.StringVal(v))
	}
	body.SetAttributeValue(name, cty.ListVal(vals))
}
