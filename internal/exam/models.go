package exam

// Question is embedded in an Exam. Questions are addressed by position;
// removal shifts later entries down by one.
type Question struct {
	Text    string   `json:"question" bson:"question"`
	Choices []string `json:"choices" bson:"choices"`
	Image   string   `json:"image,omitempty" bson:"image,omitempty"`
}

// Exam is the root document. The id is generated by the store on insert and
// is the sole key for single-item lookups. The five metadata fields form a
// unique composite key used by the question append/remove operations.
type Exam struct {
	ID        string     `json:"id" bson:"_id,omitempty"`
	Division  string     `json:"division" bson:"division"`
	Level     string     `json:"level" bson:"level"`
	Term      string     `json:"term" bson:"term"`
	Subject   string     `json:"subject" bson:"subject"`
	Year      string     `json:"year" bson:"year"`
	Questions []Question `json:"exam" bson:"questions"`
	CreatedAt int64      `json:"created_at,omitempty" bson:"created_at,omitempty"`
}

// Filter is the metadata tuple that addresses an exam for question
// mutations. All fields are required.
type Filter struct {
	Division string `json:"division"`
	Level    string `json:"level"`
	Term     string `json:"term"`
	Subject  string `json:"subject"`
	Year     string `json:"year"`
}

func (f Filter) Complete() bool {
	return f.Division != "" && f.Level != "" && f.Term != "" && f.Subject != "" && f.Year != ""
}
