package boards_controllers

import (
	boards_services "teamboards-backend/internal/features/boards/services"
)

var boardController = &BoardController{
	boards_services.GetBoardService(),
}

func GetBoardController() *BoardController {
	return boardController
}
