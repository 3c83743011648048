package domain

const (
	MaxFullNameLength      = 1500
	MaxProfileAvatarLength = 2
)

// Profile holds display data for exactly one user. It references its owner by
// ID and is removed together with it.
type Profile struct {
	ID         int64
	UserID     int64
	FullName   string
	Avatar     string
	Bio        string
	IsVerified bool
}

// PrepareSave applies the profile save contract: an empty avatar is copied
// from the owning user, anything already set is kept.
func (p *Profile) PrepareSave(owner *User) {
	if p.Avatar != "" || owner == nil {
		return
	}
	runes := []rune(owner.Avatar)
	if len(runes) > MaxProfileAvatarLength {
		runes = runes[:MaxProfileAvatarLength]
	}
	p.Avatar = string(runes)
}

func (p *Profile) Validate() error {
	if err := checkLength("full_name", p.FullName, MaxFullNameLength); err != nil {
		return err
	}
	if err := checkLength("avatar", p.Avatar, MaxProfileAvatarLength); err != nil {
		return err
	}
	return checkLength("bio", p.Bio, MaxBioLength)
}
