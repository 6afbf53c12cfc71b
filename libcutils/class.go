package libcutils

// ArgClass is the kind of argument a conversion letter reads.
type ArgClass int

const (
	ClassNone ArgClass = iota
	ClassInt
	ClassUint
	ClassFloat
	ClassChar
	ClassString
	ClassPointer
)

var classNames = [...]string{"none", "int", "uint", "float", "char", "string", "pointer"}

func (c ArgClass) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}
	return "unknown"
}

func classOf(conv string) ArgClass {
	switch conv {
	case "d", "i":
		return ClassInt
	case "u", "o", "x", "X":
		return ClassUint
	case "f", "F", "e", "E", "g", "G", "a", "A":
		return ClassFloat
	case "c":
		return ClassChar
	case "s":
		return ClassString
	case "p":
		return ClassPointer
	}
	return ClassNone
}
