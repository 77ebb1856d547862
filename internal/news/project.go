package news

// TopicOutput is the per-topic slice of the final document.
type TopicOutput struct {
	Groups []string  `yaml:"groups"`
	News   []Article `yaml:"news"`
}

// Document is the presentation-ready structure handed to the writer: the
// same deduplicated, filtered articles viewed by topic and by group.
type Document struct {
	Topics map[string]TopicOutput `yaml:"topics"`
	Groups map[string][]Article   `yaml:"groups"`
}

// Project assembles both views. Articles in each view carry the merged
// group memberships from the index, every list is sorted newest first,
// and a topic whose labels were all noise still ships its news with an
// empty groups list. yaml.v3 marshals map keys in sorted order, which
// keeps repeated runs byte-identical for identical input.
func Project(topics TopicCollection, index GroupIndex, noiseLabels []string) Document {
	annotated := AnnotateGroups(topics, index)

	doc := Document{
		Topics: make(map[string]TopicOutput, len(annotated)),
		Groups: make(map[string][]Article, len(index)),
	}

	for name, topic := range annotated {
		doc.Topics[name] = TopicOutput{
			Groups: ValidGroups(topic.Groups, noiseLabels),
			News:   SortByRecency(topic.News),
		}
	}

	for group, articles := range index {
		doc.Groups[group] = SortByRecency(articles)
	}

	return doc
}
