package dsl

// Text returns a scalar value as written, with strings unquoted.
// Lists yield "".
func (v *Value) Text() string {
	if v == nil {
		return ""
	}
	for _, s := range []*string{v.Date, v.Number, v.Color, v.Ident} {
		if s != nil {
			return *s
		}
	}
	if v.String != nil {
		return string(*v.String)
	}
	return ""
}

// IsString reports whether the value was written as a quoted string.
func (v *Value) IsString() bool { return v != nil && v.String != nil }

// Strings flattens a list into its non-empty scalar items. A scalar value
// yields a single-element slice.
func (v *Value) Strings() []string {
	if v == nil {
		return nil
	}
	items := []*Value{v}
	if v.List != nil {
		items = v.List.Items
	}
	var out []string
	for _, item := range items {
		if s := item.Text(); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Assignments returns the block's key/value statements in source order.
func (b *Block) Assignments() []*Assignment {
	return collect(b, func(st *Statement) (*Assignment, bool) {
		return st.Assignment, st.Assignment != nil
	})
}

// Decls returns nested declarations of the given kind.
func (b *Block) Decls(kind string) []*Decl {
	return collect(b, func(st *Statement) (*Decl, bool) {
		return st.Decl, st.Decl != nil && st.Decl.Kind == kind
	})
}

// Texts returns bare string lines.
func (b *Block) Texts() []string {
	return collect(b, func(st *Statement) (string, bool) {
		if st.Text == nil {
			return "", false
		}
		return string(*st.Text), true
	})
}

func collect[T any](b *Block, pick func(*Statement) (T, bool)) []T {
	if b == nil {
		return nil
	}
	var out []T
	for _, st := range b.Statements {
		if v, ok := pick(st); ok {
			out = append(out, v)
		}
	}
	return out
}
