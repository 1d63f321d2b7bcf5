// Печатает bcrypt-хеш пароля для ручного сброса через SQL:
//
//	UPDATE users SET password = '<hash>' WHERE email = '...';
package main

import (
	"flag"
	"fmt"
	"log"

	"gearguard/pkg/constants"
	"gearguard/pkg/utils"
)

func main() {
	password := flag.String("p", "", "пароль, который нужно захешировать")
	flag.Parse()

	if len(*password) < constants.MinPasswordLength {
		log.Fatalf("Пароль должен быть не короче %d символов", constants.MinPasswordLength)
	}

	hashed, err := utils.HashPassword(*password)
	if err != nil {
		log.Fatalf("Ошибка при генерации хеша: %v", err)
	}
	if err := utils.ComparePasswords(hashed, *password); err != nil {
		log.Fatalf("Хеш не прошёл проверку: %v", err)
	}

	fmt.Println(hashed)
}
