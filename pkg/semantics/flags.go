package semantics

// SemanticsFlag is a bitmask of boolean accessibility states attached to a
// node (focusable, hidden, checked, and so on).
type SemanticsFlag uint32

const (
	// SemanticsIsHidden marks a node as present in the tree but excluded
	// from the accessibility tree sent to the platform.
	SemanticsIsHidden SemanticsFlag = 1 << iota
	// SemanticsIsFocusable marks a node as eligible to receive accessibility focus.
	SemanticsIsFocusable
	// SemanticsIsFocused marks a node as currently holding accessibility focus.
	SemanticsIsFocused
	// SemanticsIsSelected marks a node as the selected item in a group.
	SemanticsIsSelected
	// SemanticsIsEnabled marks a node as enabled for interaction.
	SemanticsIsEnabled
	// SemanticsIsChecked marks a checkbox/radio-like node as checked.
	SemanticsIsChecked
	// SemanticsIsToggled marks a switch-like node as on.
	SemanticsIsToggled
	// SemanticsIsButton marks a node as acting like a button.
	SemanticsIsButton
	// SemanticsIsTextField marks a node as an editable text field.
	SemanticsIsTextField
	// SemanticsIsObscured marks a text field's value as obscured (password entry).
	SemanticsIsObscured
	// SemanticsIsLiveRegion marks a node whose content changes should be
	// announced automatically when updated.
	SemanticsIsLiveRegion
)

// Has reports whether flag is set within f.
func (f SemanticsFlag) Has(flag SemanticsFlag) bool {
	return f&flag != 0
}

// Set returns f with flag set.
func (f SemanticsFlag) Set(flag SemanticsFlag) SemanticsFlag {
	return f | flag
}

// Clear returns f with flag cleared.
func (f SemanticsFlag) Clear(flag SemanticsFlag) SemanticsFlag {
	return f &^ flag
}

// SemanticsRole names the accessibility role a node plays, hinting to the
// platform which interaction pattern to expose to assistive technology.
type SemanticsRole int

const (
	SemanticsRoleNone SemanticsRole = iota
	SemanticsRoleButton
	SemanticsRoleLink
	SemanticsRoleHeading
	SemanticsRoleImage
	SemanticsRoleText
	SemanticsRoleTextField
	SemanticsRoleCheckbox
	SemanticsRoleRadioButton
	SemanticsRoleSwitch
	SemanticsRoleSlider
	SemanticsRoleTab
	SemanticsRoleTabBar
	SemanticsRoleList
	SemanticsRoleListItem
	SemanticsRoleAlert
	SemanticsRoleDialog
)
