package rev1

import "fmt"

// Library exposes revision 1 through its binary interface: records travel
// as raw memory laid out the way this revision compiled them.
type Library struct{}

func (Library) Revision() int { return 1 }

func (Library) ObjectSize() int { return GetObjectSize() }

// Place writes a freshly constructed record into mem.
func (Library) Place(mem []byte, minor, major uint8) error {
	r := Record{Minor: minor, Major: major}
	return store(mem, &r)
}

// CallGetVersion reads a record out of mem, calls GetVersion on it and
// writes the record back.
func (Library) CallGetVersion(mem []byte) (int, error) {
	if len(mem) < GetObjectSize() {
		return 0, fmt.Errorf("rev1: need %d bytes, have %d", GetObjectSize(), len(mem))
	}

	var r Record
	if err := r.UnmarshalLayout(mem[:GetObjectSize()]); err != nil {
		return 0, err
	}
	v := GetVersion(&r)
	return v, store(mem, &r)
}

func store(mem []byte, r *Record) error {
	buf, err := r.MarshalLayout()
	if err != nil {
		return err
	}
	if len(mem) < len(buf) {
		return fmt.Errorf("rev1: need %d bytes, have %d", len(buf), len(mem))
	}
	copy(mem, buf)
	return nil
}
