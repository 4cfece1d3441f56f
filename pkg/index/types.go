package index

// EnvironmentSpec describes the host-contributed namespace of a workspace:
// the classes, globals and expand functions that do not come from a script
// or declaration file on disk.
type EnvironmentSpec struct {
	// Classes is the list of known classes.
	Classes []*ClassSpec `json:"classes,omitempty"`
	// Globals is the list of symbols visible from every script.
	Globals []*MemberSpec `json:"globals,omitempty"`
	// Expands is the list of expand functions.
	Expands []*ExpandSpec `json:"expands,omitempty"`
}

// ClassSpec describes a single class.
type ClassSpec struct {
	// Name is the fully qualified class name.
	Name string `json:"name,omitempty"`
	// Interfaces is the list of fully qualified supertype names.
	Interfaces []string `json:"interfaces,omitempty"`
	// Members is the list of declared members.
	Members []*MemberSpec `json:"members,omitempty"`
}

// MemberSpec describes a field, function or operator.
type MemberSpec struct {
	// Name is the member name.  Operators are named by their token.
	Name string `json:"name,omitempty"`
	// Kind is one of "variable", "function" or "operator".  The empty string
	// is taken as "variable".
	Kind string `json:"kind,omitempty"`
	// Type is the variable type or the function return type.
	Type string `json:"type,omitempty"`
	// Static marks members accessed through the class rather than an
	// instance.
	Static bool `json:"static,omitempty"`
	// Params is the ordered parameter list of a function.
	Params []*ParamSpec `json:"params,omitempty"`
}

// ParamSpec describes a function parameter.
type ParamSpec struct {
	Name     string `json:"name,omitempty"`
	Type     string `json:"type,omitempty"`
	Optional bool   `json:"optional,omitempty"`
	Vararg   bool   `json:"vararg,omitempty"`
}

// ExpandSpec describes an expand function attached to a receiver type.
type ExpandSpec struct {
	// Receiver is the type name the function is registered under.
	Receiver string `json:"receiver,omitempty"`
	// Function is the expand function itself.
	Function *MemberSpec `json:"function,omitempty"`
}

const (
	MemberVariable = "variable"
	MemberFunction = "function"
	MemberOperator = "operator"
)
