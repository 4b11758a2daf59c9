package service

// DuplicateMessage is the user-facing rejection text. The registration form
// branches on the "duplicate:" prefix, so it must stay parseable as such.
const DuplicateMessage = "duplicate: Anda sudah terdaftar. Setiap orang hanya dapat mendaftar satu kali (berdasarkan NIK, No HP, dan Nama)."

// ValidationError reports the first required submission field found empty.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return "field wajib diisi: " + e.Field
}

// DuplicateError rejects a submission whose name, national ID or phone
// matches an existing registrant.
type DuplicateError struct {
	Message string
}

func (e *DuplicateError) Error() string {
	return e.Message
}
