package views

// Modal is a create/edit form. A modal opened for edit remembers the id of
// the entity being edited.
type Modal[F any] struct {
	open   bool
	id     string
	Fields F
	Err    error
}

func (m *Modal[F]) OpenCreate(seed F) {
	m.open, m.id, m.Fields, m.Err = true, "", seed, nil
}

func (m *Modal[F]) OpenEdit(id string, current F) {
	m.open, m.id, m.Fields, m.Err = true, id, current, nil
}

func (m *Modal[F]) Close() {
	var zero F
	m.open, m.id, m.Fields, m.Err = false, "", zero, nil
}

func (m *Modal[F]) IsOpen() bool {
	return m.open
}

// EditingID returns the id being edited; ok is false in create mode.
func (m *Modal[F]) EditingID() (id string, ok bool) {
	return m.id, m.open && m.id != ""
}
