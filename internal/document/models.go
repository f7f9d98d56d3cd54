package document

// IDField is the store-assigned identifier key; it is never returned to clients.
const IDField = "_id"

// Document is an arbitrary JSON object supplied by a client. Values are the
// types encoding/json produces with UseNumber: string, json.Number, bool, nil,
// []interface{} and map[string]interface{}.
type Document map[string]interface{}

// WithoutID returns a shallow copy of d minus the identifier field.
func (d Document) WithoutID() Document {
	out := make(Document, len(d))
	for k, v := range d {
		if k == IDField {
			continue
		}
		out[k] = v
	}
	return out
}
