package core

// ParamType is the value kind of a map setting.
type ParamType string

const (
	ParamTypeInt   ParamType = "int"
	ParamTypeFloat ParamType = "float"
	// ParamTypeBool settings carry "true" or "false" and toggle a generation
	// stage such as rivers or climate.
	ParamTypeBool ParamType = "bool"
)

// Parameter is one generation setting or map statistic, with its value
// already formatted.
type Parameter struct {
	Key         string
	Label       string
	Type        ParamType
	Value       string
	Description string
}

// ParameterGroup is one panel section: the settings of a pipeline stage
// (plates, rivers, climate) or the statistics of the current map. Summary is
// a free-form note printed under the section.
type ParameterGroup struct {
	Name    string
	Params  []Parameter
	Summary string
}

// ParameterSnapshot is the state of the current map as the side panel shows
// it, sections in display order.
type ParameterSnapshot struct {
	Groups []ParameterGroup
}

// ParameterControl marks a setting as editable from the panel. Numeric
// controls move by Step within the optional bounds; bool controls toggle.
type ParameterControl struct {
	Key   string
	Label string
	Type  ParamType

	Step float64

	Min    float64
	Max    float64
	HasMin bool
	HasMax bool
}

// ParameterControlsProvider lists the editable settings.
type ParameterControlsProvider interface {
	ParameterControls() []ParameterControl
}

// IntParameterSetter applies an integer setting and regenerates the map. It
// returns false when the value was rejected and the map is unchanged.
type IntParameterSetter interface {
	SetIntParameter(key string, value int) bool
}

// FloatParameterSetter is IntParameterSetter for float settings.
type FloatParameterSetter interface {
	SetFloatParameter(key string, value float64) bool
}

// BoolParameterSetter switches a generation stage on or off.
type BoolParameterSetter interface {
	SetBoolParameter(key string, value bool) bool
}

// LayerSelector lets the panel switch the displayed map layer by name.
type LayerSelector interface {
	Layers() []string
	ActiveLayer() string
	SelectLayer(name string) bool
}
