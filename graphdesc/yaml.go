package graphdesc

import "gopkg.in/yaml.v3"

// YAML mirror structures for the export form. HCL remains the canonical
// encoding; YAML exists for interop with tools that cannot read HCL.

type descYAML struct {
	Name              string      `yaml:"name"`
	InputStreams      []string    `yaml:"input_streams,omitempty"`
	OutputStreams     []string    `yaml:"output_streams,omitempty"`
	InputSidePackets  []string    `yaml:"input_side_packets,omitempty"`
	OutputSidePackets []string    `yaml:"output_side_packets,omitempty"`
	Nodes             []nodeYAML  `yaml:"nodes,omitempty"`
	Generators        []nodeYAML  `yaml:"generators,omitempty"`
	Executors         []execYAML  `yaml:"executors,omitempty"`
}

type nodeYAML struct {
	Calculator        string        `yaml:"calculator"`
	InputStreams      []string      `yaml:"input_streams,omitempty"`
	OutputStreams     []string      `yaml:"output_streams,omitempty"`
	InputSidePackets  []string      `yaml:"input_side_packets,omitempty"`
	OutputSidePackets []string      `yaml:"output_side_packets,omitempty"`
	BackEdges         []string      `yaml:"back_edges,omitempty"`
	Executor          string        `yaml:"executor,omitempty"`
	SourceLayer       int           `yaml:"source_layer,omitempty"`
	Options           []optionsYAML `yaml:"options,omitempty"`
	StreamHandler     *handlerYAML  `yaml:"input_stream_handler,omitempty"`
}

type optionsYAML struct {
	Type string `yaml:"type"`
	Data string `yaml:"data"`
}

type handlerYAML struct {
	Handler string       `yaml:"handler"`
	Options *optionsYAML `yaml:"options,omitempty"`
}

type execYAML struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// EncodeYAML renders the description as YAML.
func (d *Description) EncodeYAML() ([]byte, error) {
	out := descYAML{
		Name:              d.Name,
		InputStreams:      d.InputStreams,
		OutputStreams:     d.OutputStreams,
		InputSidePackets:  d.InputSidePackets,
		OutputSidePackets: d.OutputSidePackets,
	}
	for _, n := range d.Nodes {
		out.Nodes = append(out.Nodes, nodeToYAML(n))
	}
	for _, g := range d.Generators {
		out.Generators = append(out.Generators, nodeToYAML(g))
	}
	for _, e := range d.Executors {
		out.Executors = append(out.Executors, execYAML{Name: e.Name, Type: e.Type})
	}
	return yaml.Marshal(out)
}

func nodeToYAML(n *Node) nodeYAML {
	out := nodeYAML{
		Calculator:        n.Calculator,
		InputStreams:      bindingStrings(n.InputStreams),
		OutputStreams:     bindingStrings(n.OutputStreams),
		InputSidePackets:  bindingStrings(n.InputSidePackets),
		OutputSidePackets: bindingStrings(n.OutputSidePackets),
		BackEdges:         n.BackEdges,
		Executor:          n.Executor,
		SourceLayer:       n.SourceLayer,
	}
	for _, o := range n.Options {
		out.Options = append(out.Options, optionsYAML{Type: o.TypeName, Data: string(o.Data)})
	}
	if n.InputStreamHandler != nil {
		h := &handlerYAML{Handler: n.InputStreamHandler.Handler}
		if n.InputStreamHandler.Options != nil {
			h.Options = &optionsYAML{
				Type: n.InputStreamHandler.Options.TypeName,
				Data: string(n.InputStreamHandler.Options.Data),
			}
		}
		out.StreamHandler = h
	}
	return out
}
