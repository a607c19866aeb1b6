package numeric

// Person is a passive record. No field is validated.
type Person struct {
	Name  string `json:"name" yaml:"name"`
	Age   int    `json:"age" yaml:"age"`
	Email string `json:"email" yaml:"email"`
}

// MakePerson returns a Person holding exactly the given values.
func MakePerson(name string, age int, email string) Person {
	return Person{Name: name, Age: age, Email: email}
}
