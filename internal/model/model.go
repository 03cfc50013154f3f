package model

// Account is a registered clinic user. PasswordHash never leaves the store
// layer; use Profile for anything sent back to a client.
type Account struct {
	ID           string `mapstructure:"_id,omitempty"`
	Name         string `mapstructure:"name"`
	Email        string `mapstructure:"email"`
	Phone        string `mapstructure:"phone"`
	PasswordHash string `mapstructure:"passwordHash"`
	Location     string `mapstructure:"location"`
}

// Profile is the public view of an account returned on login.
type Profile struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
}

func (a *Account) Profile() Profile {
	return Profile{Name: a.Name, Email: a.Email, Phone: a.Phone, Location: a.Location}
}

type Appointment struct {
	ID              string `json:"_id,omitempty" mapstructure:"_id,omitempty"`
	DoctorID        int    `json:"doctorId" mapstructure:"doctorId"`
	DoctorName      string `json:"doctorName" mapstructure:"doctorName"`
	Specialization  string `json:"specialization" mapstructure:"specialization"`
	AppointmentType string `json:"appointmentType" mapstructure:"appointmentType"`
	Date            string `json:"date" mapstructure:"date"`
	TimeSlot        string `json:"timeSlot" mapstructure:"timeSlot"`
	Name            string `json:"name" mapstructure:"name"`
	Email           string `json:"email" mapstructure:"email"`
	Phone           string `json:"phone" mapstructure:"phone"`
	Age             string `json:"age" mapstructure:"age"`
	Gender          string `json:"gender" mapstructure:"gender"`
	Symptoms        string `json:"symptoms" mapstructure:"symptoms"`
	Price           int    `json:"price" mapstructure:"price"`
}

type Contact struct {
	ID       string `json:"_id,omitempty" mapstructure:"_id,omitempty"`
	Name     string `json:"name" mapstructure:"name"`
	Email    string `json:"email" mapstructure:"email"`
	Phone    string `json:"phone" mapstructure:"phone"`
	Subject  string `json:"subject" mapstructure:"subject"`
	Category string `json:"category" mapstructure:"category"`
	Message  string `json:"message" mapstructure:"message"`
}
