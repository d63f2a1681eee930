package layout

import "fmt"

// Field is a named, typed record member in declaration order.
type Field struct {
	Name string
	Type Type
}

// FieldLayout is the placement of a single field inside a record.
type FieldLayout struct {
	Field

	// Offset is the byte offset of the field from the start of the record.
	Offset uint64

	// Size is the number of bytes the field's value occupies.
	Size uint64

	// Align is the field's alignment requirement.
	Align uint64

	// Padding is the number of bytes inserted between the previous field's end and Offset.
	Padding uint64
}

// End returns the offset one past the last byte of the field.
//
// Returns:
//   - uint64: Offset + Size
func (f FieldLayout) End() uint64 {
	return f.Offset + f.Size
}

// Record is the computed layout of a record under one set of rules.
type Record struct {
	Name   string
	Rules  string
	Fields []FieldLayout

	// Size is the total record size, rounded up to Align. It is also the array stride.
	Size uint64

	// Align is the largest field alignment.
	Align uint64

	// TrailingPadding is the number of bytes between the last field's end and Size.
	TrailingPadding uint64
}

// Field returns the layout of the named field.
//
// Parameters:
//   - name: the field name
//
// Returns:
//   - FieldLayout: the field layout
//   - bool: false if the record has no such field
func (r Record) Field(name string) (FieldLayout, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldLayout{}, false
}

// Compute lays out fields in order: each field is placed at the next offset aligned to its
// own alignment, and the total size is rounded up to the largest alignment.
//
// Parameters:
//   - rules: the target environment
//   - name: the record name, used for error context
//   - fields: the record members in declaration order
//
// Returns:
//   - Record: the computed layout
//   - error: ErrUnknownType (wrapped) if any field type is not known to rules
func Compute(rules Rules, name string, fields []Field) (Record, error) {
	rec := Record{
		Name:   name,
		Rules:  rules.Name(),
		Fields: make([]FieldLayout, 0, len(fields)),
		Align:  1,
	}

	offset := uint64(0)
	for _, f := range fields {
		size, align, ok := rules.SizeAlign(f.Type)
		if !ok {
			return Record{}, fmt.Errorf("%s.%s: %w %q under %s rules", name, f.Name, ErrUnknownType, f.Type, rules.Name())
		}
		aligned := RoundUp(align, offset)
		rec.Fields = append(rec.Fields, FieldLayout{
			Field:   f,
			Offset:  aligned,
			Size:    size,
			Align:   align,
			Padding: aligned - offset,
		})
		offset = aligned + size
		if align > rec.Align {
			rec.Align = align
		}
	}

	rec.Size = RoundUp(rec.Align, offset)
	rec.TrailingPadding = rec.Size - offset
	return rec, nil
}
