package util

// Contains checks if a slice contains a specific string
func Contains(slice []string, val string) bool {
	for _, item := range slice {
		if item == val {
			return true
		}
	}
	return false
}

// IntPtr returns a pointer to the given int
func IntPtr(i int) *int {
	return &i
}

// FloatPtr returns a pointer to the given float
func FloatPtr(i float64) *float64 {
	return &i
}

// StringPtr returns a pointer to the given string
func StringPtr(s string) *string {
	return &s
}
