package inspector

import (
	"fmt"
	"strings"
)

// Bar geometry in characters.
const (
	barWidth = 20
	barFill  = "#"
	barEmpty = "."
)

// RenderLabel renders a text value.
func RenderLabel(name string, value interface{}, options map[string]string) string {
	return fmt.Sprintf("%s: %s", name, FormatValue(value, options["fmt"]))
}

// RenderBar renders a horizontal progress bar such as "Value [#####.....] 50/100".
func RenderBar(name string, value float32, options map[string]string) string {
	maxVal := GetMax(options)
	var ratio float32
	if maxVal > 0 {
		ratio = min(max(value/maxVal, 0), 1)
	}

	fill := int(float32(barWidth)*ratio + 0.5)
	bar := strings.Repeat(barFill, fill) + strings.Repeat(barEmpty, barWidth-fill)
	return fmt.Sprintf("%s [%s] %g/%g", name, bar, value, maxVal)
}

// RenderBool renders an on/off flag.
func RenderBool(name string, value bool) string {
	if value {
		return name + ": yes"
	}
	return name + ": no"
}

// RenderField dispatches on the field widget.
func RenderField(f Field) string {
	switch f.Widget {
	case WidgetBar:
		if v, ok := GetFloatValue(f.Value); ok {
			return RenderBar(f.Name, v, f.Options)
		}
	case WidgetBool:
		if v, ok := f.Value.(bool); ok {
			return RenderBool(f.Name, v)
		}
	}
	return RenderLabel(f.Name, f.Value, f.Options)
}
