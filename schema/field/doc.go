// Package field provides fluent builders for declaring record fields.
//
// Field descriptors replace runtime reflection: every persistable type
// declares its shape once, as an ordered list of builders, and the rest
// of the system reuses the derived descriptors.
//
//	schema.New("Person",
//	    field.UUID("id"),
//	    field.String("name"),
//	    field.Time("birthday"),
//	    field.String("nickname").Transient(),
//	)
//
// # Field Types
//
// The set of persistable types is closed:
//
//	field.UUID("id")         // identifier, uuid column
//	field.Time("created")    // timestamp without time zone
//	field.String("name")     // text
//	field.Duration("tenure") // whole seconds, integer column
//	field.Int("visits")      // integer
//	field.Float("score")     // double precision
//	field.Bool("active")     // boolean
//
// Anything else is unrepresentable by construction; there is no runtime
// unsupported-type failure.
//
// # Options
//
// Fields support a small set of options:
//
//	field.String("password").Transient() // never persisted
//	field.String("email").Comment("contact address")
package field
