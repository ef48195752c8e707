package services

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/jatenner/Snap2Healthmain-sub005/config"
	"github.com/jatenner/Snap2Healthmain-sub005/models"
	"github.com/jatenner/Snap2Healthmain-sub005/utils"
)

func RegisterUser(email, password, fullName string) error {
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	user := models.User{
		Email:    email,
		Password: hashedPassword,
		FullName: fullName,
		Disabled: false,
	}
	return config.DB.Create(&user).Error
}

func FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := config.DB.Where("email = ? AND disabled = ?", email, false).First(&user).Error
	if err != nil {
		return nil, errors.New("user not found or disabled")
	}
	return &user, nil
}

// AuthenticateUser checks credentials and either returns a JWT directly or,
// for MFA-enabled accounts, emails a code and returns mfaPending=true.
func AuthenticateUser(email, password string) (token string, mfaPending bool, err error) {
	user, err := FindUserByEmail(email)
	if err != nil {
		return "", false, err
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return "", false, errors.New("incorrect password")
	}

	if user.MFAEnabled {
		code := fmt.Sprintf("%06d", rand.Intn(1000000))
		user.MFACode = code
		if err := config.DB.Save(user).Error; err != nil {
			return "", false, err
		}
		if err := utils.SendMFAEmail(user.Email, code); err != nil {
			return "", false, err
		}
		return "", true, nil
	}

	token, err = utils.GenerateJWT(user.ID, user.Email)
	return token, false, err
}

func VerifyMFA(email, code string) (string, error) {
	user, err := FindUserByEmail(email)
	if err != nil {
		return "", err
	}
	if !user.MFAEnabled || user.MFACode == "" || user.MFACode != code {
		return "", errors.New("invalid MFA code")
	}

	user.MFACode = ""
	if err := config.DB.Save(user).Error; err != nil {
		return "", err
	}
	return utils.GenerateJWT(user.ID, user.Email)
}

// RequestPasswordReset emails a reset code. Unknown emails return nil so the
// endpoint does not reveal which accounts exist.
func RequestPasswordReset(email string) error {
	user, err := FindUserByEmail(email)
	if err != nil {
		return nil
	}

	token := utils.GenerateRandomToken(8)
	user.ResetToken = token
	if err := config.DB.Save(user).Error; err != nil {
		return err
	}
	return utils.SendResetEmail(user.Email, token)
}

func ResetPassword(email, token, newPassword string) error {
	user, err := FindUserByEmail(email)
	if err != nil {
		return err
	}
	if user.ResetToken == "" || user.ResetToken != token {
		return errors.New("invalid reset token")
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.Password = hashed
	user.ResetToken = ""
	return config.DB.Save(user).Error
}
