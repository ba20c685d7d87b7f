// Package docs embeds the help topics printed by "rbo topic".
//
// readme.md is the index: every topic is listed there as "* name: summary",
// in the order "rbo topic '*'" prints them.
package docs

import (
	"bufio"
	"embed"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

//go:embed *.md
var docs embed.FS

// Readme is the name of the index topic.
const Readme = "readme"

// ErrUnknownTopic is matched by the errors of unknown topics.
var ErrUnknownTopic = errors.New("unknown topic")

// UnknownTopicError names the topic asked for and the available ones.
type UnknownTopicError struct {
	Name      string
	Available []string
}

func (e *UnknownTopicError) Error() string {
	return fmt.Sprintf("unknown topic %q, available topics: %s", e.Name, strings.Join(e.Available, ", "))
}

func (e *UnknownTopicError) Unwrap() error { return ErrUnknownTopic }

// Topic is an entry of the index.
type Topic struct {
	Name    string
	Summary string
}

var indexLine = regexp.MustCompile(`^\*\s+([^:]+):\s*(.*)$`)

// Index returns the topics listed in the readme, in order.
func Index() ([]Topic, error) {
	content, err := docs.ReadFile(Readme + ".md")
	if err != nil {
		return nil, err
	}
	var topics []Topic
	scanner := bufio.NewScanner(strings.NewReader(string(content)))
	for scanner.Scan() {
		if m := indexLine.FindStringSubmatch(scanner.Text()); m != nil {
			topics = append(topics, Topic{Name: strings.TrimSpace(m[1]), Summary: strings.TrimSpace(m[2])})
		}
	}
	return topics, scanner.Err()
}

// Names returns the names of the indexed topics.
func Names() []string {
	topics, err := Index()
	if err != nil {
		return nil
	}
	names := make([]string, len(topics))
	for i, t := range topics {
		names[i] = t.Name
	}
	return names
}

// Get returns the markdown of a topic, the readme when name is empty.
func Get(name string) (string, error) {
	if name == "" {
		name = Readme
	}
	content, err := docs.ReadFile(name + ".md")
	if err != nil {
		return "", &UnknownTopicError{Name: name, Available: Names()}
	}
	return string(content), nil
}

// Render returns the topics one after the other. "*" stands for every
// indexed topic.
func Render(names ...string) (string, error) {
	var expanded []string
	for _, n := range names {
		if n == "*" {
			expanded = append(expanded, Names()...)
			continue
		}
		expanded = append(expanded, n)
	}
	parts := make([]string, 0, len(expanded))
	for _, n := range expanded {
		content, err := Get(n)
		if err != nil {
			return "", err
		}
		parts = append(parts, strings.TrimSpace(content))
	}
	return strings.Join(parts, "\n\n---\n\n") + "\n", nil
}
