package classify

import (
	"fmt"

	"github.com/qatium/epanet-go/internal/binio"
	"github.com/qatium/epanet-go/internal/format"
)

// SideTable lists the reservoirs and tanks. Indices are 1-based node
// positions as stored; Areas are parallel to Indices.
type SideTable struct {
	Indices []int32
	Areas   []float32
}

// ReadSideTable reads count index entries at offset followed by count areas.
func ReadSideTable(r binio.Reader, offset, count int) (SideTable, error) {
	indices, err := r.Int32Table(sideTableField, offset, count)
	if err != nil {
		return SideTable{}, err
	}
	areas, err := r.Float32Table("reservoir and tank area", offset+format.WordBytes*count, count)
	if err != nil {
		return SideTable{}, err
	}
	return SideTable{Indices: indices, Areas: areas}, nil
}

// Advisory is a side-table row the classifier could not use as-is.
type Advisory = format.Advisory

const sideTableField = "reservoir and tank index"

// Nodes classifies nodeCount nodes. A node absent from the side table is a
// junction; otherwise a zero area makes it a reservoir and any other area a
// tank. When a node appears more than once the first row wins and the later
// rows are reported. Rows pointing outside 1..nodeCount are reported and
// ignored.
func Nodes(table SideTable, nodeCount int) ([]NodeCategory, []Advisory) {
	rows := make(map[int]int, len(table.Indices))
	var advisories []Advisory
	for row, stored := range table.Indices {
		pos := int(stored) - 1
		if pos < 0 || pos >= nodeCount {
			advisories = append(advisories, Advisory{
				Field: sideTableField, Row: row, Value: stored, Err: format.ErrMalformedInput,
				Reason: fmt.Sprintf("node index outside 1..%d", nodeCount),
			})
			continue
		}
		if first, dup := rows[pos]; dup {
			advisories = append(advisories, Advisory{
				Field: sideTableField, Row: row, Value: stored, Err: format.ErrAmbiguousClassification,
				Reason: fmt.Sprintf("duplicate of row %d, first entry kept", first),
			})
			continue
		}
		rows[pos] = row
	}

	categories := make([]NodeCategory, nodeCount)
	for i := range categories {
		row, ok := rows[i]
		switch {
		case !ok:
			categories[i] = Junction
		case table.Areas[row] == 0.0:
			categories[i] = Reservoir
		default:
			categories[i] = Tank
		}
	}
	return categories, advisories
}

// ReadNodes reads the side table at offset and classifies every node.
func ReadNodes(r binio.Reader, offset, nodeCount, resAndTankCount int) ([]NodeCategory, []Advisory, error) {
	table, err := ReadSideTable(r, offset, resAndTankCount)
	if err != nil {
		return nil, nil, err
	}
	categories, advisories := Nodes(table, nodeCount)
	for i := range advisories {
		advisories[i].Offset = offset + format.WordBytes*advisories[i].Row
	}
	return categories, advisories, nil
}

// ParseLink maps a stored type code onto its category.
func ParseLink(code int32) (LinkCategory, error) {
	c := LinkCategory(code)
	if !c.Valid() {
		return 0, fmt.Errorf("link type code %d outside [0, %d]: %w", code, LinkCategoryCount-1, format.ErrMalformedInput)
	}
	return c, nil
}

// ReadLinks reads and maps count link type codes starting at offset.
func ReadLinks(r binio.Reader, offset, count int) ([]LinkCategory, error) {
	codes, err := r.Int32Table("link type", offset, count)
	if err != nil {
		return nil, err
	}
	out := make([]LinkCategory, count)
	for j, code := range codes {
		c, err := ParseLink(code)
		if err != nil {
			return nil, &format.FieldError{
				Field:  "link type",
				Offset: offset + format.WordBytes*j,
				Err:    err,
				Detail: fmt.Sprintf("link %d", j),
			}
		}
		out[j] = c
	}
	return out, nil
}

// ReadLengths reads one float32 length per link.
func ReadLengths(r binio.Reader, offset, count int) ([]float32, error) {
	return r.Float32Table("link length", offset, count)
}
