package gltf

// defaultClassColors maps IFC entity class names to the diffuse color
// of their default material. Classes without an entry fall back to a
// neutral gray.
var defaultClassColors = map[string]RGBA{
	"IfcWall":                {R: 0.8, G: 0.8, B: 0.8, A: 1},
	"IfcWallStandardCase":    {R: 0.8, G: 0.8, B: 0.8, A: 1},
	"IfcSlab":                {R: 0.6, G: 0.6, B: 0.6, A: 1},
	"IfcRoof":                {R: 0.54, G: 0.33, B: 0.23, A: 1},
	"IfcWindow":              {R: 0.6, G: 0.75, B: 0.9, A: 0.35},
	"IfcDoor":                {R: 0.64, G: 0.48, B: 0.33, A: 1},
	"IfcColumn":              {R: 0.7, G: 0.7, B: 0.72, A: 1},
	"IfcBeam":                {R: 0.7, G: 0.7, B: 0.72, A: 1},
	"IfcMember":              {R: 0.7, G: 0.7, B: 0.72, A: 1},
	"IfcPlate":               {R: 0.6, G: 0.75, B: 0.9, A: 0.5},
	"IfcCurtainWall":         {R: 0.6, G: 0.75, B: 0.9, A: 0.5},
	"IfcStair":               {R: 0.65, G: 0.6, B: 0.55, A: 1},
	"IfcStairFlight":         {R: 0.65, G: 0.6, B: 0.55, A: 1},
	"IfcRamp":                {R: 0.65, G: 0.6, B: 0.55, A: 1},
	"IfcRampFlight":          {R: 0.65, G: 0.6, B: 0.55, A: 1},
	"IfcRailing":             {R: 0.45, G: 0.45, B: 0.48, A: 1},
	"IfcCovering":            {R: 0.85, G: 0.83, B: 0.77, A: 1},
	"IfcFooting":             {R: 0.5, G: 0.5, B: 0.5, A: 1},
	"IfcPile":                {R: 0.5, G: 0.5, B: 0.5, A: 1},
	"IfcSite":                {R: 0.45, G: 0.6, B: 0.35, A: 1},
	"IfcSpace":               {R: 0.6, G: 0.7, B: 0.8, A: 0.2},
	"IfcFurnishingElement":   {R: 0.55, G: 0.4, B: 0.3, A: 1},
	"IfcFlowTerminal":        {R: 0.75, G: 0.75, B: 0.78, A: 1},
	"IfcFlowSegment":         {R: 0.75, G: 0.75, B: 0.78, A: 1},
	"IfcFlowFitting":         {R: 0.75, G: 0.75, B: 0.78, A: 1},
	"IfcBuildingElementPart": {R: 0.7, G: 0.7, B: 0.7, A: 1},
}

// DefaultClassColor returns the default diffuse color for an entity
// class name.
func DefaultClassColor(class string) RGBA {
	if c, ok := defaultClassColors[class]; ok {
		return c
	}
	return RGBA{R: 0.75, G: 0.75, B: 0.75, A: 1}
}
