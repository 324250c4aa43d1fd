package response

import "github.com/jinzhu/copier"

// mustCopy maps a read model onto its response type by field name. Field sets
// are fixed at compile time, so a failure is a programming error.
func mustCopy(to, from any) {
	if err := copier.Copy(to, from); err != nil {
		panic(err)
	}
}
