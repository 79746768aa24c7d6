package record

import (
	"encoding/json"

	"github.com/financy/backend/internal/domain/entity"
)

type userRecord struct {
	ID             uint32 `json:"id"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Picture        string `json:"picture"`
	PrimaryColor   string `json:"primaryColor"`
	SecondaryColor string `json:"secondaryColor"`
}

// DecodeUser reads a user record.
func DecodeUser(data []byte) (*entity.User, error) {
	f, err := decodeFields(data)
	if err != nil {
		return nil, err
	}

	return entity.NewUser(f.unsigned("id", 0), entity.UserParams{
		FirstName:      f.text("firstName", ""),
		LastName:       f.text("lastName", ""),
		Picture:        f.text("picture", ""),
		PrimaryColor:   f.text("primaryColor", entity.DefaultPrimaryColor),
		SecondaryColor: f.text("secondaryColor", entity.DefaultSecondaryColor),
	}), nil
}

// EncodeUser writes a user record.
func EncodeUser(u *entity.User) ([]byte, error) {
	return json.Marshal(userRecordOf(u))
}

func userRecordOf(u *entity.User) userRecord {
	return userRecord{
		ID:             u.ID,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Picture:        u.Picture,
		PrimaryColor:   u.PrimaryColor,
		SecondaryColor: u.SecondaryColor,
	}
}
