// Package drawer renders a pipeline as a Graphviz DOT graph.
package drawer

import (
	"fmt"
	"io"
	"os"
	"text/template"
	"time"

	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"
	"gopkg.in/go-playground/colors.v1" //nolint

	"github.com/askiada/rangler/internal/store"
	"github.com/askiada/rangler/pkg/pipeline/measure"
	"github.com/askiada/rangler/pkg/pipeline/model"
)

// DOTDrawer is a drawer that creates a DOT file with the pipeline graph.
type DOTDrawer struct {
	graph    graph.Graph[string, string]
	store    store.CustomStore[string, string]
	fileName string
	options  []GraphOption
}

// NewDOTDrawer creates a new DOT drawer writing to fileName.
// The graph is laid out left to right unless options change it.
func NewDOTDrawer(fileName string, options ...GraphOption) *DOTDrawer {
	st := store.NewMemoryStore[string, string]()

	return &DOTDrawer{
		fileName: fileName,
		options:  options,
		store:    st,
		graph:    graph.NewWithStore[string, string](graph.StringHash, st, graph.Directed()),
	}
}

// AddStep adds a step to the pipeline graph.
func (d *DOTDrawer) AddStep(name string) error {
	err := d.graph.AddVertex(name)
	if err != nil {
		return errors.Wrapf(err, "unable to add vertex %s", name)
	}

	return nil
}

// AddLink adds a link between parent and children steps.
func (d *DOTDrawer) AddLink(parentName, childrenName string) error {
	err := d.graph.AddEdge(parentName, childrenName)
	if err != nil {
		return errors.Wrapf(err, "unable to add edge from %s to %s", parentName, childrenName)
	}

	return nil
}

// Draw creates a DOT file with the pipeline graph.
func (d *DOTDrawer) Draw() error {
	file, err := os.Create(d.fileName)
	if err != nil {
		return errors.Wrapf(err, "unable to create file %s", d.fileName)
	}
	defer file.Close()

	err = d.Render(file)
	if err != nil {
		return errors.Wrapf(err, "unable to create dot file %s", d.fileName)
	}

	return file.Close()
}

// Render writes the DOT description of the pipeline graph to wrt.
func (d *DOTDrawer) Render(wrt io.Writer) error {
	desc, err := d.generateDOT(d.options...)
	if err != nil {
		return errors.Wrap(err, "failed to generate DOT description")
	}

	return renderDOT(wrt, desc)
}

// SetTotalTime sets the total time for the step.
func (d *DOTDrawer) SetTotalTime(stepName string, startTime time.Time) error {
	err := d.store.UpdateVertex(stepName, func(properties *graph.VertexProperties) {
		properties.Attributes["xlabel"] = "total: " + time.Since(startTime).String()
	})
	if err != nil {
		return errors.Wrapf(err, "unable to update vertex %s", stepName)
	}

	return nil
}

const (
	maxRGB = 240
	// idleColour is used for the link into a step that never received a line.
	idleColour = "gray"
)

// AddMeasure labels every step with its average duration and drop count, and colours
// the link into each step from blue (fastest step) to red (slowest step).
func (d *DOTDrawer) AddMeasure(msr measure.Measure) error {
	all := msr.AllMetrics()

	var minAvg, maxAvg time.Duration
	first := true
	for name, mt := range all {
		if name == model.EndStep.Name || mt.Total() == 0 {
			continue
		}
		avg := mt.AVGDuration()
		if first {
			minAvg, maxAvg = avg, avg
			first = false

			continue
		}
		minAvg = min(minAvg, avg)
		maxAvg = max(maxAvg, avg)
	}

	for name, mt := range all {
		if name == model.EndStep.Name {
			err := d.store.UpdateVertex(name, func(properties *graph.VertexProperties) {
				properties.Attributes["xlabel"] = "total: " + mt.GetTotalDuration().String()
			})
			if err != nil {
				return errors.Wrapf(err, "unable to update vertex %s", name)
			}

			continue
		}

		color := idleColour
		if mt.Total() > 0 {
			color = colour(mt.AVGDuration(), minAvg, maxAvg)
		}

		err := d.updateStep(name, mt, color)
		if err != nil {
			return err
		}
	}

	return nil
}

func (d *DOTDrawer) updateStep(name string, mt measure.Metric, color string) error {
	avg := mt.AVGDuration()

	err := d.store.UpdateVertex(name, func(properties *graph.VertexProperties) {
		properties.Attributes["xlabel"] = fmt.Sprintf("avg: %s, dropped: %d/%d", avg, mt.Dropped(), mt.Total())
	})
	if err != nil {
		return errors.Wrapf(err, "unable to update vertex %s", name)
	}

	edges, err := d.store.ListEdges()
	if err != nil {
		return errors.Wrap(err, "unable to list edges")
	}

	for _, edge := range edges {
		if edge.Target != name {
			continue
		}

		err := d.graph.UpdateEdge(edge.Source, name,
			graph.EdgeAttribute("label", fmt.Sprintf("%d", mt.Total())),
			graph.EdgeAttribute("fontcolor", "blue"),
			graph.EdgeAttribute("color", color),
		)
		if err != nil {
			return errors.Wrap(err, "unable to update edge")
		}
	}

	return nil
}

// colour maps avg onto a blue to red gradient between minAvg and maxAvg.
func colour(avg, minAvg, maxAvg time.Duration) string {
	fraction := 1.0
	if maxAvg > minAvg {
		fraction = float64(avg-minAvg) / float64(maxAvg-minAvg)
	}
	fraction = min(max(fraction, 0), 1)

	red := uint8(maxRGB * fraction)
	blue := uint8(maxRGB - maxRGB*fraction)

	rgb, err := colors.RGB(red, 0, blue) //nolint
	if err != nil {
		return "black"
	}

	return rgb.ToHEX().String()
}

//nolint:lll //this is a template
const dotTemplate = `strict {{.GraphType}} {
	{{range $k, $v := .Attributes}}
		{{$k}}="{{$v}}";
	{{end}}
	{{range $s := .Statements}}
		{{printf "%q" .Source}} {{if .Target}}{{$.EdgeOperator}} {{printf "%q" .Target}} [ {{range $k, $v := .EdgeAttributes}}{{$k}}="{{$v}}", {{end}} weight={{.EdgeWeight}} ]{{else}}[ {{range $k, $v := .HTMLAttributes}}{{$k}}={{$v}}, {{end}} {{range $k, $v := .SourceAttributes}}{{$k}}="{{$v}}", {{end}} weight={{.SourceWeight}} ]{{end}};
	{{end}}
	}
	`

type description struct {
	GraphType    string
	Attributes   map[string]string
	EdgeOperator string
	Statements   []statement
}

type statement struct {
	Source           string
	Target           string
	SourceAttributes map[string]string
	HTMLAttributes   map[string]string
	EdgeAttributes   map[string]string
	SourceWeight     int
	EdgeWeight       int
}

// GraphOption customises the generated DOT graph.
type GraphOption func(*description)

// GraphAttribute sets a graph level attribute, for instance rankdir.
func GraphAttribute(key, value string) GraphOption {
	return func(d *description) {
		d.Attributes[key] = value
	}
}

func (d *DOTDrawer) generateDOT(options ...GraphOption) (description, error) {
	desc := description{
		GraphType:    "digraph",
		Attributes:   map[string]string{"rankdir": "LR"},
		EdgeOperator: "->",
		Statements:   make([]statement, 0),
	}

	for _, option := range options {
		option(&desc)
	}

	vertices, err := d.store.ListVertices()
	if err != nil {
		return desc, errors.Wrap(err, "unable to list vertices")
	}

	for _, vertex := range vertices {
		_, properties, err := d.store.Vertex(vertex)
		if err != nil {
			return desc, errors.Wrap(err, "unable to get vertex properties")
		}

		attributes := make(map[string]string, len(properties.Attributes))
		htmlAttributes := make(map[string]string)

		for key, value := range properties.Attributes {
			if key == "xlabel" {
				htmlAttributes["label"] = fmt.Sprintf(`<%s <BR /> <FONT POINT-SIZE="12">%s</FONT>>`,
					template.HTMLEscapeString(vertex), template.HTMLEscapeString(value))

				continue
			}
			attributes[key] = value
		}

		desc.Statements = append(desc.Statements, statement{
			Source:           vertex,
			SourceWeight:     properties.Weight,
			SourceAttributes: attributes,
			HTMLAttributes:   htmlAttributes,
		})
	}

	edges, err := d.store.ListEdges()
	if err != nil {
		return desc, errors.Wrap(err, "unable to list edges")
	}

	for _, edge := range edges {
		desc.Statements = append(desc.Statements, statement{
			Source:         edge.Source,
			Target:         edge.Target,
			EdgeWeight:     edge.Properties.Weight,
			EdgeAttributes: edge.Properties.Attributes,
		})
	}

	return desc, nil
}

func renderDOT(wrt io.Writer, desc description) error {
	tpl, err := template.New("dotTemplate").Parse(dotTemplate)
	if err != nil {
		return errors.Wrap(err, "failed to parse template")
	}

	err = tpl.Execute(wrt, desc)
	if err != nil {
		return errors.Wrap(err, "unable to execute template")
	}

	return nil
}

var _ Drawer = (*DOTDrawer)(nil)
