package declaration

import "fmt"

// PointKind identifies where a set of attributes is attached.
type PointKind string

const (
	PointClass    PointKind = "class"
	PointMethod   PointKind = "method"
	PointProperty PointKind = "property"
	PointConstant PointKind = "constant"
)

// Point is an attachment point: the declaration itself or one of its named members.
type Point struct {
	Kind PointKind `json:"kind"`
	Name string    `json:"name,omitempty"`
}

// ClassPoint is the attachment point of the declaration itself.
var ClassPoint = Point{Kind: PointClass}

func (point Point) String() string {
	if point.Kind == PointClass {
		return string(point.Kind)
	}

	return fmt.Sprintf("%s %s", point.Kind, point.Name)
}

// Attachment is the ordered list of attribute names attached at one point.
type Attachment struct {
	Point Point    `json:"point"`
	Tags  []string `json:"tags"`
}

// Method describes a method member as far as invocation checks need it.
type Method struct {
	Name           string `json:"name"`
	Public         bool   `json:"public"`
	Static         bool   `json:"static"`
	RequiredParams int    `json:"requiredParams"`
}

// SourceLocation is the file and 1-based line a declaration was found at.
type SourceLocation struct {
	Path string `json:"path"`
	Line int    `json:"line"`
}

func (loc SourceLocation) String() string {
	if loc.Line == 0 {
		return loc.Path
	}

	return fmt.Sprintf("%s:%d", loc.Path, loc.Line)
}
