package content

// Catalog is the category -> lesson -> topic tree of every loadable lesson.
type Catalog []CategoryEntry

type CategoryEntry struct {
	Name    string
	Lessons []LessonEntry
}

type LessonEntry struct {
	Name   string
	Topics []string
}

// Catalog walks every category and lesson. Lessons that fail to load are
// skipped and returned in skipped so the caller can report them.
func (s *Store) Catalog() (cat Catalog, skipped []error, err error) {
	categories, err := s.ListCategories()
	if err != nil {
		return nil, nil, err
	}
	for _, c := range categories {
		lessons, err := s.ListLessons(c)
		if err != nil {
			skipped = append(skipped, err)
			continue
		}
		entry := CategoryEntry{Name: c}
		for _, name := range lessons {
			l, err := s.LoadLesson(c, name)
			if err != nil {
				skipped = append(skipped, err)
				continue
			}
			entry.Lessons = append(entry.Lessons, LessonEntry{Name: name, Topics: l.Topics()})
		}
		cat = append(cat, entry)
	}
	return cat, skipped, nil
}

// Topics flattens the catalog into category/lesson/topic triples.
func (c Catalog) Topics() [][3]string {
	var out [][3]string
	for _, cat := range c {
		for _, l := range cat.Lessons {
			for _, t := range l.Topics {
				out = append(out, [3]string{cat.Name, l.Name, t})
			}
		}
	}
	return out
}
