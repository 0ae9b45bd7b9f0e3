package onboarding

// Draft accumulates wizard answers for one onboarding session. It lives in
// the session store only and is consumed exactly once at completion; nothing
// here touches the durable tables until then.
type Draft struct {
	UserType     string         `json:"user_type"`
	FullName     string         `json:"full_name"`
	Username     string         `json:"username"`
	JobTitle     string         `json:"job_title"`
	Company      string         `json:"company"`
	Location     string         `json:"location"`
	Tagline      string         `json:"tagline"`
	Bio          string         `json:"bio"`
	ProfileData  map[string]any `json:"profile_data"`
	ActivityData map[string]any `json:"activity_data"`
	Skills       []string       `json:"skills"`
}

// Patch is a partial draft update. Nil pointers leave the current value
// untouched; map entries merge key-by-key.
type Patch struct {
	UserType     *string        `json:"user_type"`
	FullName     *string        `json:"full_name"`
	Username     *string        `json:"username"`
	JobTitle     *string        `json:"job_title"`
	Company      *string        `json:"company"`
	Location     *string        `json:"location"`
	Tagline      *string        `json:"tagline"`
	Bio          *string        `json:"bio"`
	ProfileData  map[string]any `json:"profile_data"`
	ActivityData map[string]any `json:"activity_data"`
	Skills       []string       `json:"skills"`
}

func (d *Draft) Apply(p Patch) {
	if p.UserType != nil {
		d.UserType = *p.UserType
	}
	if p.FullName != nil {
		d.FullName = *p.FullName
	}
	if p.Username != nil {
		d.Username = *p.Username
	}
	if p.JobTitle != nil {
		d.JobTitle = *p.JobTitle
	}
	if p.Company != nil {
		d.Company = *p.Company
	}
	if p.Location != nil {
		d.Location = *p.Location
	}
	if p.Tagline != nil {
		d.Tagline = *p.Tagline
	}
	if p.Bio != nil {
		d.Bio = *p.Bio
	}
	for k, v := range p.ProfileData {
		if d.ProfileData == nil {
			d.ProfileData = map[string]any{}
		}
		d.ProfileData[k] = v
	}
	for k, v := range p.ActivityData {
		if d.ActivityData == nil {
			d.ActivityData = map[string]any{}
		}
		d.ActivityData[k] = v
	}
	if p.Skills != nil {
		d.Skills = p.Skills
	}
}

// ActivityTitle returns the title answer from the activity step, if any. A
// non-empty title is what triggers first-artifact creation at completion.
func (d *Draft) ActivityTitle() string {
	if d.ActivityData == nil {
		return ""
	}
	title, _ := d.ActivityData["title"].(string)
	return title
}

func (d *Draft) activityString(key string) string {
	if d.ActivityData == nil {
		return ""
	}
	v, _ := d.ActivityData[key].(string)
	return v
}

// ActivityDescription is the free-text description from the activity step.
func (d *Draft) ActivityDescription() string {
	return d.activityString("description")
}

// ActivityTechnologies returns the technology selections from the activity
// step, tolerating both decoded-JSON ([]any) and native ([]string) shapes.
func (d *Draft) ActivityTechnologies() []string {
	if d.ActivityData == nil {
		return nil
	}
	switch v := d.ActivityData["technologies"].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
