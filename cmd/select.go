package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/quant-rishabh/learn-through-quiz/internal/console"
	"github.com/quant-rishabh/learn-through-quiz/internal/content"
)

// topicArgs accepts up to category, lesson and topic.
var topicArgs = cobra.MaximumNArgs(3)

func newConsole(cmd *cobra.Command, rt *runtime) *console.Console {
	return console.New(os.Stdin, cmd.OutOrStdout(), rt.content, rt.logger.Named("console"))
}

// selectTopic resolves category, lesson and topic from args, asking with
// numbered menus for whatever is missing.
func selectTopic(c *console.Console, cs *content.Store, args []string) (*content.Topic, error) {
	category, err := argOrChoose(c, args, 0, "Select a category", cs.ListCategories)
	if err != nil {
		return nil, err
	}
	lesson, err := argOrChoose(c, args, 1, "Select a lesson", func() ([]string, error) {
		return cs.ListLessons(category)
	})
	if err != nil {
		return nil, err
	}
	l, err := cs.LoadLesson(category, content.LessonName(lesson))
	if err != nil {
		return nil, err
	}
	topic, err := argOrChoose(c, args, 2, "Select a topic", func() ([]string, error) {
		return l.Topics(), nil
	})
	if err != nil {
		return nil, err
	}
	return l.Topic(topic)
}

func argOrChoose(c *console.Console, args []string, i int, title string, options func() ([]string, error)) (string, error) {
	if i < len(args) {
		return args[i], nil
	}
	opts, err := options()
	if err != nil {
		return "", err
	}
	return c.Choose(title, opts)
}
