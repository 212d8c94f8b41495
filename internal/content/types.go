package content

import "strings"

// Kind is the declared presentation type of a question.
type Kind string

const (
	KindText  Kind = "text"
	KindImage Kind = "image"
)

// Reserved question keys. Anything else (except "_" comments) is a part.
const (
	KeyQuestion = "question"
	KeyType     = "type"
	KeyImage    = "image"
)

// LessonExt is the file suffix of a lesson inside a category directory.
const LessonExt = ".json"

// Part is one independently graded prompt of a question.
type Part struct {
	Key  string
	Spec AnswerSpec
}

// Question is a single entry of a topic. Parts keep their authoring order.
type Question struct {
	// Context is the display-only "question" text, if any.
	Context string
	Kind    Kind
	// Image is the media file name, empty if the question has none.
	Image string
	Parts []Part
}

// ImageFirst reports whether the image must be shown before the first part.
// Questions that carry an image without declaring type=image show it after
// their last part.
func (q Question) ImageFirst() bool {
	return q.Kind == KindImage && q.Image != ""
}

// Topic is an ordered list of questions addressed by category/lesson/name.
type Topic struct {
	Category  string
	Lesson    string
	Name      string
	Questions []Question
}

// PartCount returns the number of answerable parts across all questions.
func (t *Topic) PartCount() int {
	n := 0
	for _, q := range t.Questions {
		n += len(q.Parts)
	}
	return n
}

// Media returns the reference of a question image within this topic.
func (t *Topic) Media(name string) MediaRef {
	return MediaRef{Category: t.Category, Lesson: t.Lesson, Topic: t.Name, Name: name}
}

// MediaRef addresses an image under image_directory.
type MediaRef struct {
	Category string
	Lesson   string
	Topic    string
	Name     string
}

// Lesson is one loaded lesson file: a set of topics in file order.
type Lesson struct {
	Category string
	Name     string
	topics   []*Topic
}

// Topics lists the topic names in file order.
func (l *Lesson) Topics() []string {
	names := make([]string, 0, len(l.topics))
	for _, t := range l.topics {
		names = append(names, t.Name)
	}
	return names
}

// Topic returns the named topic.
func (l *Lesson) Topic(name string) (*Topic, error) {
	for _, t := range l.topics {
		if t.Name == name {
			return t, nil
		}
	}
	return nil, &Error{
		Path: l.Category + "/" + l.Name,
		Err:  notFoundf("topic %q", name),
	}
}

// LessonName strips a trailing lesson file suffix, so "physics" and
// "physics.json" name the same lesson.
func LessonName(s string) string {
	return strings.TrimSuffix(strings.TrimSpace(s), LessonExt)
}
