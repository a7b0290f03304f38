package layout

import (
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
)

// WriteJSON writes a description of the record and its top-level fields as a json object. Nested
// records and pointer targets are referred to by name.
func (l *StructLayout) WriteJSON(writer *jwriter.Writer) {
	obj := writer.Object()
	defer obj.End()

	obj.Name("Name").String(l.name)
	obj.Name("Kind").String(l.kind.String())
	obj.Name("ABI").String(l.abi.Name)
	obj.Name("Size").Int(l.size)
	obj.Name("Align").Int(l.align)

	if l.tag != nil {
		tag := obj.Name("Tag").Object()
		tag.Name("Field").String(l.tag.Name)
		tag.Name("Offset").Int(l.tag.Offset)
		if l.tag.HasDefault {
			tag.Name("Default").Float64(float64(l.tag.Default))
		}
		tag.End()
	}

	if l.chain != nil {
		chain := obj.Name("Chain").Object()
		chain.Name("Field").String(l.chain.Name)
		chain.Name("Offset").Int(l.chain.Offset)
		chain.Name("Base").String(l.chain.Target.name)
		chain.End()
	}

	fields := obj.Name("Fields").Array()
	for i := range l.fields {
		field := fields.Object()
		l.fields[i].writeJSON(&field)
		field.End()
	}
	fields.End()
}

// JSON returns the output of WriteJSON as a string
func (l *StructLayout) JSON() string {
	writer := jwriter.NewWriter()
	l.WriteJSON(&writer)
	return string(writer.Bytes())
}

func (f *Field) writeJSON(json *jwriter.ObjectState) {
	json.Name("Name").String(f.Name)
	json.Name("Kind").String(f.Kind.String())
	json.Name("Offset").Int(f.Offset)
	json.Name("Size").Int(f.Size)
	json.Name("Align").Int(f.Align)

	if f.Kind == KindArray {
		json.Name("Elem").String(f.Elem.String())
		json.Name("Count").Int(f.Count)
	}
	if f.Record != nil {
		json.Name("Record").String(f.Record.name)
	}
	if f.Target != nil {
		json.Name("Target").String(f.Target.name)
	}
}
